package formula

import (
	"fmt"

	"github.com/expr-lang/expr/ast"

	"github.com/sheetcore/spreadsheet"
)

var aggregateFunctions = map[string]bool{
	"SUM": true, "AVG": true, "MIN": true, "MAX": true,
}

// validate restricts the parsed AST to the grammar this package actually
// evaluates: arithmetic over numbers, cell references, and calls to the
// aggregate functions or external_ref. Anything expr-lang's fuller
// language supports beyond that (pipes, maps, member access, ternaries...)
// is rejected here with a formula parse error.
func validate(node ast.Node) error {
	switch n := node.(type) {
	case *ast.IntegerNode, *ast.FloatNode:
		return nil

	case *ast.UnaryNode:
		if n.Operator != "-" && n.Operator != "+" {
			return fmt.Errorf("unsupported unary operator %q", n.Operator)
		}
		return validate(n.Node)

	case *ast.BinaryNode:
		if !isArithmeticOp(n.Operator) {
			return fmt.Errorf("unsupported operator %q", n.Operator)
		}
		if err := validate(n.Left); err != nil {
			return err
		}
		return validate(n.Right)

	case *ast.IdentifierNode:
		if _, ok := spreadsheet.ParsePositionShape(n.Value); !ok {
			return fmt.Errorf("unknown identifier %q", n.Value)
		}
		return nil

	case *ast.CallNode:
		return validateCall(n)

	default:
		return fmt.Errorf("unsupported expression syntax")
	}
}

func validateCall(n *ast.CallNode) error {
	name, ok := calleeName(n.Callee)
	if !ok {
		return fmt.Errorf("unsupported call expression")
	}

	switch {
	case name == rangeFunc:
		return fmt.Errorf("a range must be used inside SUM, AVG, MIN, or MAX")

	case aggregateFunctions[name]:
		if len(n.Arguments) == 0 {
			return fmt.Errorf("%s requires at least one argument", name)
		}
		for _, arg := range n.Arguments {
			if call, ok := arg.(*ast.CallNode); ok {
				if nm, ok := calleeName(call.Callee); ok && nm == rangeFunc {
					if err := validateRange(call); err != nil {
						return err
					}
					continue
				}
			}
			if err := validate(arg); err != nil {
				return err
			}
		}
		return nil

	case name == "external_ref":
		if len(n.Arguments) != 1 {
			return fmt.Errorf("external_ref takes exactly one argument")
		}
		if _, ok := n.Arguments[0].(*ast.StringNode); !ok {
			return fmt.Errorf("external_ref argument must be a string literal")
		}
		return nil

	default:
		return fmt.Errorf("unknown function %q", name)
	}
}

func validateRange(call *ast.CallNode) error {
	if len(call.Arguments) != 2 {
		return fmt.Errorf("malformed range")
	}
	for _, arg := range call.Arguments {
		s, ok := arg.(*ast.StringNode)
		if !ok {
			return fmt.Errorf("malformed range")
		}
		if _, ok := spreadsheet.ParsePositionShape(s.Value); !ok {
			return fmt.Errorf("malformed range endpoint %q", s.Value)
		}
	}
	return nil
}

func isArithmeticOp(op string) bool {
	switch op {
	case "+", "-", "*", "/":
		return true
	default:
		return false
	}
}

func calleeName(node ast.Node) (string, bool) {
	id, ok := node.(*ast.IdentifierNode)
	if !ok {
		return "", false
	}
	return id.Value, true
}
