package filter

// MapMembers returns a deep copy of n with every MemberAccess name replaced
// by fn(name). Constants are copied with their bound names, so the copy
// renders against the same bind parameters as the original.
func MapMembers(n Node, fn func(string) string) Node {
	switch node := n.(type) {
	case *UnaryLogic:
		return &UnaryLogic{Op: node.Op, Operand: MapMembers(node.Operand, fn)}
	case *BinaryLogic:
		return &BinaryLogic{Op: node.Op, Left: MapMembers(node.Left, fn), Right: MapMembers(node.Right, fn)}
	case *Comparison:
		return &Comparison{Op: node.Op, Left: mapOperand(node.Left, fn), Right: mapOperand(node.Right, fn)}
	}
	return n
}

func mapOperand(o Operand, fn func(string) string) Operand {
	switch op := o.(type) {
	case *MemberAccess:
		return &MemberAccess{Name: fn(op.Name)}
	case *Constant:
		c := *op
		return &c
	}
	return o
}
