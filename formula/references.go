package formula

import (
	"github.com/expr-lang/expr/ast"

	"github.com/sheetcore/spreadsheet"
)

// collectReferences walks the validated AST and returns every position it
// reads — single cell references and range endpoints expanded row-major —
// deduplicated while preserving first-seen (left-to-right, depth-first)
// order. external_ref URLs are not positions and are skipped.
func collectReferences(node ast.Node) []spreadsheet.Position {
	var refs []spreadsheet.Position
	seen := make(map[spreadsheet.Position]bool)

	add := func(pos spreadsheet.Position) {
		if !seen[pos] {
			seen[pos] = true
			refs = append(refs, pos)
		}
	}

	var visit func(ast.Node)
	visit = func(n ast.Node) {
		switch v := n.(type) {
		case *ast.UnaryNode:
			visit(v.Node)

		case *ast.BinaryNode:
			visit(v.Left)
			visit(v.Right)

		case *ast.IdentifierNode:
			if pos, ok := spreadsheet.ParsePositionShape(v.Value); ok {
				add(pos)
			}

		case *ast.CallNode:
			if name, ok := calleeName(v.Callee); ok && name == rangeFunc && len(v.Arguments) == 2 {
				start, sOk := positionFromStringNode(v.Arguments[0])
				end, eOk := positionFromStringNode(v.Arguments[1])
				if sOk && eOk {
					for _, pos := range rangePositions(start, end) {
						add(pos)
					}
				}
				return
			}
			for _, arg := range v.Arguments {
				visit(arg)
			}
		}
	}

	visit(node)
	return refs
}

func positionFromStringNode(n ast.Node) (spreadsheet.Position, bool) {
	s, ok := n.(*ast.StringNode)
	if !ok {
		return spreadsheet.Position{}, false
	}
	return spreadsheet.ParsePositionShape(s.Value)
}
