package formula

import (
	"regexp"

	"github.com/sheetcore/spreadsheet"
)

// rangeShape matches the bare "A1:B3" range syntax the expr-lang grammar
// has no token for, so it can be rewritten into a call the parser accepts
// before the expression reaches it.
var rangeShape = regexp.MustCompile(`\b([A-Z]+[0-9]+):([A-Z]+[0-9]+)\b`)

// extractRanges rewrites every "START:END" occurrence into
// __range("START","END"), a call the expr-lang parser treats like any
// other function call. The printer and evaluator recognize that shape and
// restore/interpret it as a range.
func extractRanges(expression string) string {
	return rangeShape.ReplaceAllString(expression, rangeFunc+`("$1","$2")`)
}

// rangePositions expands a rectangular, inclusive "start:end" range into
// its contained positions in row-major order.
func rangePositions(start, end spreadsheet.Position) []spreadsheet.Position {
	minRow, maxRow := start.Row, end.Row
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	minCol, maxCol := start.Col, end.Col
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}

	positions := make([]spreadsheet.Position, 0, (maxRow-minRow+1)*(maxCol-minCol+1))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			positions = append(positions, spreadsheet.Position{Row: row, Col: col})
		}
	}
	return positions
}
