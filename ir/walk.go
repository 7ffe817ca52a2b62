package ir

// Children returns the direct children of e in evaluation order. Branch
// targets are references, not children.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case *Drop:
		return []Expr{n.Value}
	case *Block:
		return n.Children
	case *If:
		out := []Expr{n.Condition, n.Then}
		if n.Else != nil {
			out = append(out, n.Else)
		}
		return out
	case *Br:
		if n.Condition != nil {
			return append(append([]Expr(nil), n.Values...), n.Condition)
		}
		return n.Values
	case *Switch:
		return append(append([]Expr(nil), n.Values...), n.Condition)
	case *Call:
		if n.Indirect {
			return append(append([]Expr(nil), n.Args...), n.Target)
		}
		return n.Args
	case *Set:
		return []Expr{n.Value}
	case *Load:
		return []Expr{n.Address}
	case *Store:
		return []Expr{n.Address, n.Value}
	case *Unary:
		return []Expr{n.Operand}
	case *Convert:
		return []Expr{n.Operand}
	case *Binary:
		return []Expr{n.Left, n.Right}
	case *Select:
		return []Expr{n.IfTrue, n.IfFalse, n.Condition}
	case *Return:
		return n.Values
	case *MemoryGrow:
		return []Expr{n.Delta}
	case *MultiSet:
		return []Expr{n.Value}
	}
	return nil
}

// Walk visits every node under root in post-order: children before their
// parent, siblings in evaluation order. It stops at the first error visit
// returns. The traversal keeps its own stack, so deep trees are safe.
func Walk(root Expr, visit func(Expr) error) error {
	type item struct {
		e        Expr
		expanded bool
	}
	stack := []item{{e: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.expanded {
			if err := visit(it.e); err != nil {
				return err
			}
			continue
		}
		stack = append(stack, item{e: it.e, expanded: true})
		children := Children(it.e)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{e: children[i]})
		}
	}
	return nil
}

// Count returns the number of nodes under root, root included.
func Count(root Expr) int {
	n := 0
	_ = Walk(root, func(Expr) error {
		n++
		return nil
	})
	return n
}
