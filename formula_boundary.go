package spreadsheet

// SheetView is the read-only view of a sheet a Formula consults during
// evaluation. It never auto-materializes cells; an absent position simply
// returns a nil Cell.
type SheetView interface {
	GetCellPtr(pos Position) *Cell
}

// Formula is the external collaborator contract a parsed formula must
// satisfy. Concrete parsing/evaluation lives outside this package (see the
// formula package) so the dependency graph stays free of grammar details.
type Formula interface {
	// Evaluate executes the formula against view, returning either a
	// number or a FormulaError carried in-band (never an error return).
	Evaluate(view SheetView) (float64, *FormulaError)
	// GetExpression returns a canonicalized, idempotent expression string
	// (without the leading '=').
	GetExpression() string
	// GetReferencedCells returns the positions the formula reads,
	// deduplicated, in first-seen order.
	GetReferencedCells() []Position
}

// FormulaParser parses a formula expression (with the leading '=' already
// stripped) into a Formula, or fails with a parse error. Cell.Set calls an
// injected parser of this type, so this package never imports a concrete
// grammar implementation.
type FormulaParser func(expression string) (Formula, error)
