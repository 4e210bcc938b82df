package formula

import (
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
)

const (
	precAdditive = iota + 1 // + -
	precMultiplicative      // * /
	precUnary
)

// printNode renders node as a canonical, idempotent expression: redundant
// parentheses are dropped, and the only parentheses reinserted are those
// operator precedence requires to reparse back to the same tree.
func printNode(node ast.Node) string {
	var b strings.Builder
	write(&b, node, 0)
	return b.String()
}

func write(b *strings.Builder, node ast.Node, minPrec int) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		b.WriteString(strconv.Itoa(n.Value))

	case *ast.FloatNode:
		b.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))

	case *ast.IdentifierNode:
		b.WriteString(n.Value)

	case *ast.StringNode:
		b.WriteString(strconv.Quote(n.Value))

	case *ast.UnaryNode:
		open := precUnary < minPrec
		if open {
			b.WriteString("(")
		}
		b.WriteString(n.Operator)
		write(b, n.Node, precUnary)
		if open {
			b.WriteString(")")
		}

	case *ast.BinaryNode:
		prec := binaryPrecedence(n.Operator)
		open := prec < minPrec
		if open {
			b.WriteString("(")
		}
		write(b, n.Left, prec)
		b.WriteString(n.Operator)
		// the right operand is printed at prec+1: + and * are associative
		// so this costs a few harmless extra parens, but - and / are not,
		// and this keeps one rule correct for all four operators.
		write(b, n.Right, prec+1)
		if open {
			b.WriteString(")")
		}

	case *ast.CallNode:
		writeCall(b, n)
	}
}

func writeCall(b *strings.Builder, n *ast.CallNode) {
	name, _ := calleeName(n.Callee)
	if name == rangeFunc && len(n.Arguments) == 2 {
		start, _ := n.Arguments[0].(*ast.StringNode)
		end, _ := n.Arguments[1].(*ast.StringNode)
		b.WriteString(start.Value)
		b.WriteString(":")
		b.WriteString(end.Value)
		return
	}

	b.WriteString(name)
	b.WriteString("(")
	for i, arg := range n.Arguments {
		if i > 0 {
			b.WriteString(",")
		}
		write(b, arg, 0)
	}
	b.WriteString(")")
}

func binaryPrecedence(op string) int {
	switch op {
	case "*", "/":
		return precMultiplicative
	default:
		return precAdditive
	}
}
