package parser

// Expr is a node of a parsed boolean query. The set of node kinds is closed:
// *Var and *BinaryOp are the only implementations.
type Expr interface {
	String() string
	isExpr()
}

// Var is a leaf naming a single term.
type Var struct {
	Term string
}

// OpKind is the operator of an internal node.
type OpKind int

const (
	OpAnd OpKind = iota
	OpOr
)

func (k OpKind) String() string {
	switch k {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return "?"
	}
}

// BinaryOp combines the results of two subtrees.
type BinaryOp struct {
	Op    OpKind
	Left  Expr
	Right Expr
}

func (*Var) isExpr()      {}
func (*BinaryOp) isExpr() {}

func (v *Var) String() string {
	return v.Term
}

// String renders the node fully parenthesized, e.g. "(a OR (b AND c))".
func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// Query is one line of the query batch. Err is set, and Tree is nil, when
// the line failed to parse and the batch is configured to carry on.
type Query struct {
	ID   int
	Raw  string
	Tree Expr
	Err  error
}
