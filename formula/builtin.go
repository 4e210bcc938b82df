package formula

import "github.com/sheetcore/spreadsheet"

// sum, average, minimum, and maximum fold a flattened operand list the way
// the teacher's MathFunctions.go folded its generic expr.Function
// arguments — here every operand is already a float64, so the folds are
// plain arithmetic rather than the dynamic any-typed runtime helpers the
// teacher needed for a loosely-typed expression language (see DESIGN.md).
func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func average(values []float64) (float64, *spreadsheet.FormulaError) {
	if len(values) == 0 {
		valueErr := spreadsheet.NewFormulaError(spreadsheet.ErrorValue)
		return 0, &valueErr
	}
	return sum(values) / float64(len(values)), nil
}

func minimum(values []float64) (float64, *spreadsheet.FormulaError) {
	if len(values) == 0 {
		valueErr := spreadsheet.NewFormulaError(spreadsheet.ErrorValue)
		return 0, &valueErr
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min, nil
}

func maximum(values []float64) (float64, *spreadsheet.FormulaError) {
	if len(values) == 0 {
		valueErr := spreadsheet.NewFormulaError(spreadsheet.ErrorValue)
		return 0, &valueErr
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}
