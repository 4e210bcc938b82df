package spreadsheet

// EscapeSign is the leading character that marks a text literal whose
// displayed value has the marker stripped (e.g. a cell holding a value
// that would otherwise be mistaken for a formula or number).
const EscapeSign = '\''

type contentKind uint8

const (
	contentEmpty contentKind = iota
	contentText
	contentFormula
)

// cachedValue is the memoized result of evaluating a formula content.
type cachedValue struct {
	number float64
	err    *FormulaError
}

// cellContent is the discriminated {empty, text, formula} variant a Cell
// owns. It is always replaced as a whole unit — never partially mutated —
// except for its cache, which InvalidateCache clears in place.
type cellContent struct {
	kind    contentKind
	text    string  // raw text for contentText; "" for contentEmpty
	formula Formula // set only for contentFormula
	cache   *cachedValue
}

func newEmptyContent() cellContent {
	return cellContent{kind: contentEmpty}
}

func newTextContent(text string) cellContent {
	return cellContent{kind: contentText, text: text}
}

func newFormulaContent(formula Formula) cellContent {
	return cellContent{kind: contentFormula, formula: formula}
}

// Text returns the content's stored text form.
func (c *cellContent) Text() string {
	switch c.kind {
	case contentText:
		return c.text
	case contentFormula:
		return "=" + c.formula.GetExpression()
	default:
		return ""
	}
}

// ReferencedCells returns the positions a formula content reads. Non-formula
// content never references anything.
func (c cellContent) ReferencedCells() []Position {
	if c.kind != contentFormula {
		return nil
	}
	return c.formula.GetReferencedCells()
}

// Value computes the content's value, using and populating the cache for
// formula content.
func (c *cellContent) Value(view SheetView) Value {
	switch c.kind {
	case contentText:
		if len(c.text) > 0 && c.text[0] == EscapeSign {
			return TextValue(c.text[1:])
		}
		return TextValue(c.text)
	case contentFormula:
		if c.cache == nil {
			number, ferr := c.formula.Evaluate(view)
			c.cache = &cachedValue{number: number, err: ferr}
		}
		if c.cache.err != nil {
			return NewErrorValue(*c.cache.err)
		}
		return NumberValue(c.cache.number)
	default:
		return TextValue("")
	}
}

// InvalidateCache clears a formula content's memoized value. A no-op for
// non-formula content.
func (c *cellContent) InvalidateCache() {
	c.cache = nil
}

// PeekValue computes the content's value like Value, but never populates
// the cache: a cache hit is still returned from it, but a miss is
// evaluated and handed back without being stored. Used to report a value
// during invalidation without defeating the "cache is empty right after a
// write" invariant that Value's own caching would otherwise break.
func (c *cellContent) PeekValue(view SheetView) Value {
	if c.kind != contentFormula || c.cache != nil {
		return c.Value(view)
	}
	number, ferr := c.formula.Evaluate(view)
	if ferr != nil {
		return NewErrorValue(*ferr)
	}
	return NumberValue(number)
}
