package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetcore/spreadsheet"
)

// fakeView is a minimal spreadsheet.SheetView for formula tests, holding
// plain numbers/text/errors keyed by position without any of the core
// package's dependency-graph machinery.
type fakeView struct {
	cells map[spreadsheet.Position]spreadsheet.Value
}

func newFakeView() *fakeView {
	return &fakeView{cells: map[spreadsheet.Position]spreadsheet.Value{}}
}

func (v *fakeView) set(a1 string, value spreadsheet.Value) {
	pos := spreadsheet.FromString(a1)
	v.cells[pos] = value
}

func (v *fakeView) GetCellPtr(pos spreadsheet.Position) *spreadsheet.Cell {
	// fakeView never returns a real *Cell; evalCall/cellToFloat only calls
	// GetValue() on what's returned, so tests that need a referenced cell
	// go through the real spreadsheet.Sheet (see integration_test.go).
	return nil
}

func (v *fakeView) value(pos spreadsheet.Position) (spreadsheet.Value, bool) {
	val, ok := v.cells[pos]
	return val, ok
}

func mustParse(t *testing.T, expr string) spreadsheet.Formula {
	t.Helper()
	f, err := Parse(expr)
	require.NoError(t, err)
	return f
}

func TestParse_ArithmeticOverLiterals(t *testing.T) {
	f := mustParse(t, "1+2*3")
	n, ferr := f.Evaluate(newFakeView())
	require.Nil(t, ferr)
	assert.Equal(t, float64(7), n)
}

func TestParse_DivisionByZeroIsArithmeticError(t *testing.T) {
	f := mustParse(t, "1/0")
	_, ferr := f.Evaluate(newFakeView())
	require.NotNil(t, ferr)
	assert.Equal(t, spreadsheet.ErrorArithmetic, ferr.Kind)
}

func TestParse_EmptyExpressionRejected(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}

func TestParse_UnsupportedSyntaxRejected(t *testing.T) {
	for _, expr := range []string{"1 ?? 2", "1 | 2", "[1,2]"} {
		_, err := Parse(expr)
		assert.Error(t, err, expr)
	}
}

func TestParse_ReferencedCellsForPlainIdentifier(t *testing.T) {
	f := mustParse(t, "A1+B2")
	refs := f.GetReferencedCells()
	assert.ElementsMatch(t, []spreadsheet.Position{
		spreadsheet.FromString("A1"),
		spreadsheet.FromString("B2"),
	}, refs)
}

func TestParse_AbsentReferenceIsZero(t *testing.T) {
	f := mustParse(t, "A1+1")
	n, ferr := f.Evaluate(newFakeView())
	require.Nil(t, ferr)
	assert.Equal(t, float64(1), n)
}

func TestParse_RangeInsideAggregate(t *testing.T) {
	f := mustParse(t, "SUM(A1:A3)")
	refs := f.GetReferencedCells()
	assert.ElementsMatch(t, []spreadsheet.Position{
		spreadsheet.FromString("A1"),
		spreadsheet.FromString("A2"),
		spreadsheet.FromString("A3"),
	}, refs)
}

func TestParse_BareRangeOutsideAggregateRejected(t *testing.T) {
	_, err := Parse("A1:A3")
	assert.Error(t, err)
}

func TestParse_AggregateRequiresAtLeastOneArgument(t *testing.T) {
	_, err := Parse("SUM()")
	assert.Error(t, err)
}

func TestParse_ExpressionPrintedCanonically(t *testing.T) {
	f := mustParse(t, "SUM(A1:A3)")
	assert.Equal(t, "SUM(A1:A3)", f.GetExpression())
}

func TestParse_PrinterIsIdempotent(t *testing.T) {
	f := mustParse(t, "(1+2)*3")
	again, err := Parse(f.GetExpression())
	require.NoError(t, err)
	assert.Equal(t, f.GetExpression(), again.GetExpression())
}

func TestParse_ExternalRefInvalidArityRejected(t *testing.T) {
	_, err := Parse(`external_ref("a","b")`)
	assert.Error(t, err)
}

func TestParse_ExternalRefRequiresStringLiteral(t *testing.T) {
	_, err := Parse("external_ref(A1)")
	assert.Error(t, err)
}
