package model

// Param is a mutable scalar parameter. Parameters are configuration, not
// solver state: they are never solved for and are excluded from snapshots.
type Param struct {
	name  string
	block *Block
	value float64
}

// NewParam declares a parameter on b.
func (b *Block) NewParam(name string, value float64) *Param {
	b.claim(name)
	p := &Param{name: name, block: b, value: value}
	b.params = append(b.params, p)
	return p
}

// Name returns the fully-qualified name of the parameter.
func (p *Param) Name() string { return p.block.Name() + "." + p.name }

func (p *Param) Value() float64  { return p.value }
func (p *Param) Set(val float64) { p.value = val }
