package model

import (
	"encoding/json"
	"testing"
)

func TestSnapshotRestore(t *testing.T) {
	ts, _ := NewTimeSet(0, 1)
	b := NewBlock("unit")
	v := b.NewVar("flow", ts, 5.0)
	v.FixAt(0)
	s := b.NewScalarVar("area", 100.0)
	s.Fix()
	c := b.NewConstraint("balance", ts, func(float64) float64 { return 0 })

	snap := Capture(b)

	// Perturb the specification the way an initializer would.
	v.UnfixAt(0)
	v.SetAt(0, 99)
	v.FixAt(1)
	s.Unfix()
	s.Set(1)
	c.Deactivate()

	snap.Restore(b)

	if !v.FixedAt(0) || v.At(0) != 5.0 {
		t.Errorf("fixed entry not restored: fixed=%v value=%g", v.FixedAt(0), v.At(0))
	}
	if v.FixedAt(1) {
		t.Error("free entry should be free after restore")
	}
	if !s.Fixed() || s.Value() != 100.0 {
		t.Errorf("scalar not restored: fixed=%v value=%g", s.Fixed(), s.Value())
	}
	if !c.ActiveAt(0) || !c.ActiveAt(1) {
		t.Error("constraint should be active after restore")
	}
}

func TestSnapshotKeepsSolvedValues(t *testing.T) {
	ts, _ := NewTimeSet(0, 1)
	b := NewBlock("unit")
	v := b.NewVar("temp", ts, 300)

	snap := Capture(b)
	v.SetAt(1, 360) // pretend the solver moved a free variable
	snap.Restore(b)

	if v.At(1) != 360 {
		t.Errorf("free value should survive restore as a warm start, got %g", v.At(1))
	}
}

func TestSnapshotJSON(t *testing.T) {
	b := NewBlock("unit")
	v := b.NewScalarVar("x", 2.0)
	v.Fix()

	snap := Capture(b)
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	v.Unfix()
	v.Set(7)
	back.Restore(b)
	if !v.Fixed() || v.Value() != 2.0 {
		t.Errorf("round-tripped snapshot did not restore: fixed=%v value=%g", v.Fixed(), v.Value())
	}
}
