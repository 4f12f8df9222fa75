package model

// Expr is a named expression evaluated lazily against the current variable
// values. Expressions form the declarative term graph of a block; they hold
// no state of their own.
type Expr struct {
	name  string
	block *Block
	ts    *TimeSet // nil for a scalar
	fn    func(t float64) float64
}

// NewExpr declares a time-indexed expression on b.
func (b *Block) NewExpr(name string, ts *TimeSet, fn func(t float64) float64) *Expr {
	b.claim(name)
	e := &Expr{name: name, block: b, ts: ts, fn: fn}
	b.exprs = append(b.exprs, e)
	return e
}

// NewScalarExpr declares a scalar expression on b.
func (b *Block) NewScalarExpr(name string, fn func() float64) *Expr {
	b.claim(name)
	e := &Expr{name: name, block: b, fn: func(float64) float64 { return fn() }}
	b.exprs = append(b.exprs, e)
	return e
}

// Name returns the fully-qualified name of the expression.
func (e *Expr) Name() string { return e.block.Name() + "." + e.name }

// At evaluates the expression at time t.
func (e *Expr) At(t float64) float64 { return e.fn(t) }

// Value evaluates a scalar expression.
func (e *Expr) Value() float64 { return e.fn(scalarKey) }
