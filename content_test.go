package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellContent_EscapeSignStripsLeadingMarker(t *testing.T) {
	content := newTextContent("'=5")
	assert.Equal(t, TextValue("=5"), content.Value(nil))
	assert.Equal(t, "'=5", content.Text(), "the stored text keeps the escape marker")
}

func TestCellContent_EmptyHasNoReferences(t *testing.T) {
	assert.Nil(t, newEmptyContent().ReferencedCells())
	assert.Nil(t, newTextContent("x").ReferencedCells())
}

func TestCellContent_FormulaValueIsCachedUntilInvalidated(t *testing.T) {
	calls := 0
	formula := &countingFormula{onEvaluate: func() { calls++ }}
	content := newFormulaContent(formula)

	content.Value(nil)
	content.Value(nil)
	assert.Equal(t, 1, calls, "a second read before invalidation must hit the cache")

	content.InvalidateCache()
	content.Value(nil)
	assert.Equal(t, 2, calls)
}

type countingFormula struct {
	onEvaluate func()
}

func (f *countingFormula) GetExpression() string        { return "COUNT" }
func (f *countingFormula) GetReferencedCells() []Position { return nil }
func (f *countingFormula) Evaluate(SheetView) (float64, *FormulaError) {
	f.onEvaluate()
	return 42, nil
}
