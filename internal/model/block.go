package model

import "fmt"

// Block is a node in the flowsheet tree. It owns the variables,
// parameters, expressions, and constraints declared on it, plus any
// sub-blocks. Component names are unique within a block and qualified by
// the block's dotted path.
type Block struct {
	name     string
	parent   *Block
	names    map[string]struct{}
	vars     []*Var
	params   []*Param
	exprs    []*Expr
	cons     []*Constraint
	children []*Block
}

// NewBlock creates a root block.
func NewBlock(name string) *Block {
	return &Block{name: name, names: map[string]struct{}{}}
}

// NewChild creates a sub-block attached to b.
func (b *Block) NewChild(name string) *Block {
	b.claim(name)
	c := NewBlock(name)
	c.parent = b
	b.children = append(b.children, c)
	return c
}

// Name returns the fully-qualified dotted name of the block.
func (b *Block) Name() string {
	if b.parent == nil {
		return b.name
	}
	return b.parent.Name() + "." + b.name
}

func (b *Block) claim(name string) {
	if _, ok := b.names[name]; ok {
		panic(fmt.Sprintf("%v: %s on block %s", ErrDuplicateName, name, b.Name()))
	}
	b.names[name] = struct{}{}
}

// Vars returns every variable declared on b and its sub-blocks,
// depth-first.
func (b *Block) Vars() []*Var {
	out := append([]*Var(nil), b.vars...)
	for _, c := range b.children {
		out = append(out, c.Vars()...)
	}
	return out
}

// Constraints returns every constraint declared on b and its sub-blocks,
// depth-first.
func (b *Block) Constraints() []*Constraint {
	out := append([]*Constraint(nil), b.cons...)
	for _, c := range b.children {
		out = append(out, c.Constraints()...)
	}
	return out
}
