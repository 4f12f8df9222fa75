package model

import "fmt"

// VarState is the recorded specification of one variable entry. Values are
// recorded only for fixed entries, so restoring a snapshot replaces the
// caller's specification without clobbering solved values.
type VarState struct {
	Fixed bool     `json:"fixed"`
	Value *float64 `json:"value,omitempty"`
}

// ConstraintState is the recorded specification of one constraint instance.
type ConstraintState struct {
	Active bool `json:"active"`
}

// Snapshot captures the fixed/active specification of a block tree, keyed
// by fully-qualified component name and time point. It serializes cleanly
// with encoding/json.
type Snapshot struct {
	Vars        map[string]VarState        `json:"vars"`
	Constraints map[string]ConstraintState `json:"constraints"`
}

func entryKey(name string, t float64) string {
	return fmt.Sprintf("%s[%g]", name, t)
}

// Capture records the current fixed flags (with values of fixed entries)
// and active flags of everything under b.
func Capture(b *Block) *Snapshot {
	s := &Snapshot{
		Vars:        map[string]VarState{},
		Constraints: map[string]ConstraintState{},
	}
	for _, v := range b.Vars() {
		for _, t := range v.keys() {
			st := VarState{Fixed: v.FixedAt(t)}
			if st.Fixed {
				val := v.At(t)
				st.Value = &val
			}
			s.Vars[entryKey(v.Name(), t)] = st
		}
	}
	for _, c := range b.Constraints() {
		for _, t := range c.points {
			s.Constraints[entryKey(c.Name(), t)] = ConstraintState{Active: c.ActiveAt(t)}
		}
	}
	return s
}

// Restore applies the snapshot back onto b: fixed flags everywhere, values
// for entries that were fixed at capture time, and constraint active flags.
// Components without a recorded entry are left untouched.
func (s *Snapshot) Restore(b *Block) {
	for _, v := range b.Vars() {
		for _, t := range v.keys() {
			st, ok := s.Vars[entryKey(v.Name(), t)]
			if !ok {
				continue
			}
			if st.Fixed {
				if st.Value != nil {
					v.SetAt(t, *st.Value)
				}
				v.FixAt(t)
			} else {
				v.UnfixAt(t)
			}
		}
	}
	for _, c := range b.Constraints() {
		for _, t := range c.points {
			st, ok := s.Constraints[entryKey(c.Name(), t)]
			if !ok {
				continue
			}
			c.active[t] = st.Active
		}
	}
}
