package formula

import (
	"github.com/expr-lang/expr/ast"

	"github.com/sheetcore/spreadsheet"
)

// evaluator walks one formula's AST against a single SheetView.
type evaluator struct {
	view spreadsheet.SheetView
}

func (e *evaluator) eval(node ast.Node) (float64, *spreadsheet.FormulaError) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return float64(n.Value), nil

	case *ast.FloatNode:
		return n.Value, nil

	case *ast.IdentifierNode:
		pos, _ := spreadsheet.ParsePositionShape(n.Value)
		return cellToFloat(e.view, pos)

	case *ast.UnaryNode:
		operand, ferr := e.eval(n.Node)
		if ferr != nil {
			return 0, ferr
		}
		if n.Operator == "-" {
			return -operand, nil
		}
		return operand, nil

	case *ast.BinaryNode:
		return e.evalBinary(n)

	case *ast.CallNode:
		return e.evalCall(n)

	default:
		valueErr := spreadsheet.NewFormulaError(spreadsheet.ErrorValue)
		return 0, &valueErr
	}
}

func (e *evaluator) evalBinary(n *ast.BinaryNode) (float64, *spreadsheet.FormulaError) {
	left, ferr := e.eval(n.Left)
	if ferr != nil {
		return 0, ferr
	}
	right, ferr := e.eval(n.Right)
	if ferr != nil {
		return 0, ferr
	}

	switch n.Operator {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		return left / right, nil
	default:
		valueErr := spreadsheet.NewFormulaError(spreadsheet.ErrorValue)
		return 0, &valueErr
	}
}

func (e *evaluator) evalCall(n *ast.CallNode) (float64, *spreadsheet.FormulaError) {
	name, _ := calleeName(n.Callee)

	if name == "external_ref" {
		url, _ := n.Arguments[0].(*ast.StringNode)
		return fetchExternalRef(url.Value)
	}

	operands, ferr := e.evalOperands(n.Arguments)
	if ferr != nil {
		return 0, ferr
	}

	switch name {
	case "SUM":
		return sum(operands), nil
	case "AVG":
		return average(operands)
	case "MIN":
		return minimum(operands)
	case "MAX":
		return maximum(operands)
	default:
		valueErr := spreadsheet.NewFormulaError(spreadsheet.ErrorValue)
		return 0, &valueErr
	}
}

// evalOperands flattens an aggregate function's arguments into a single
// slice of numbers, expanding any range argument into its cells' values.
func (e *evaluator) evalOperands(args []ast.Node) ([]float64, *spreadsheet.FormulaError) {
	var operands []float64
	for _, arg := range args {
		if call, ok := arg.(*ast.CallNode); ok {
			if nm, ok := calleeName(call.Callee); ok && nm == rangeFunc {
				start, _ := positionFromStringNode(call.Arguments[0])
				end, _ := positionFromStringNode(call.Arguments[1])
				for _, pos := range rangePositions(start, end) {
					n, ferr := cellToFloat(e.view, pos)
					if ferr != nil {
						return nil, ferr
					}
					operands = append(operands, n)
				}
				continue
			}
		}
		n, ferr := e.eval(arg)
		if ferr != nil {
			return nil, ferr
		}
		operands = append(operands, n)
	}
	return operands, nil
}
