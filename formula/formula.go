// Package formula implements the spreadsheet.Formula boundary: it parses
// arithmetic expressions over cell references, ranges, and a small set of
// aggregate functions, using the expr-lang expression-language parser for
// tokenizing and AST construction, and evaluates the resulting tree itself
// against a spreadsheet.SheetView.
package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/sheetcore/spreadsheet"
)

// rangeFunc is the synthetic callee extractRanges substitutes for the
// "A1:B3" range syntax, which the expr-lang grammar has no token for.
const rangeFunc = "__range"

// Parse compiles expression (with the leading '=' already stripped) into a
// spreadsheet.Formula. It satisfies spreadsheet.FormulaParser.
func Parse(expression string) (spreadsheet.Formula, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty formula")
	}

	tree, err := parser.Parse(extractRanges(expression))
	if err != nil {
		return nil, fmt.Errorf("syntax error: %w", err)
	}

	if err := validate(tree.Node); err != nil {
		return nil, err
	}

	return &astFormula{
		node:       tree.Node,
		references: collectReferences(tree.Node),
		expression: printNode(tree.Node),
	}, nil
}

// astFormula is a parsed, validated formula AST root plus its precomputed
// canonical expression and reference list.
type astFormula struct {
	node       ast.Node
	references []spreadsheet.Position
	expression string
}

func (f *astFormula) GetExpression() string {
	return f.expression
}

func (f *astFormula) GetReferencedCells() []spreadsheet.Position {
	return f.references
}

// Evaluate walks the AST, resolving identifiers and range/function calls
// against view. Any FormulaError encountered anywhere in the tree is
// returned immediately as the evaluation result (first-seen error wins).
func (f *astFormula) Evaluate(view spreadsheet.SheetView) (float64, *spreadsheet.FormulaError) {
	e := &evaluator{view: view}
	n, ferr := e.eval(f.node)
	if ferr != nil {
		return 0, ferr
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		arith := spreadsheet.NewFormulaError(spreadsheet.ErrorArithmetic)
		return 0, &arith
	}
	return n, nil
}

// cellToFloat converts a referenced cell's value into the float64 an
// arithmetic formula needs, per the Formula boundary contract: an absent
// or empty cell contributes 0, a number cell passes through, a text cell
// is parsed as a full-string float (failure -> Value error), and an error
// cell propagates its error.
func cellToFloat(view spreadsheet.SheetView, pos spreadsheet.Position) (float64, *spreadsheet.FormulaError) {
	if !pos.IsValid() {
		refErr := spreadsheet.NewFormulaError(spreadsheet.ErrorRef)
		return 0, &refErr
	}

	cell := view.GetCellPtr(pos)
	if cell == nil {
		return 0, nil
	}

	v := cell.GetValue()
	switch v.Kind {
	case spreadsheet.ValueNumber:
		return v.Number, nil
	case spreadsheet.ValueError:
		err := v.Err
		return 0, &err
	default:
		if v.Text == "" {
			return 0, nil
		}
		n, err := strconv.ParseFloat(v.Text, 64)
		if err != nil {
			valueErr := spreadsheet.NewFormulaError(spreadsheet.ErrorValue)
			return 0, &valueErr
		}
		return n, nil
	}
}
