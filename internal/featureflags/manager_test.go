package featureflags

import "testing"

func TestEnabledBooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", 1, false) || !m.Enabled("c", 1, false) || !m.Enabled("e", 1, false) {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", 1, true) || m.Enabled("d", 1, true) || m.Enabled("f", 1, true) {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
}

func TestEnabledFallback(t *testing.T) {
	m := NewManager("uploads=off")

	if !m.Enabled("missing", 1, true) {
		t.Fatal("unconfigured flag should evaluate to fallback")
	}
	if m.Enabled("missing", 1, false) {
		t.Fatal("unconfigured flag should evaluate to fallback")
	}

	var nilManager *Manager
	if !nilManager.Enabled("anything", 1, true) {
		t.Fatal("nil manager should evaluate to fallback")
	}
}

func TestEnabledPercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%")

	if !m.Enabled("always", 1, false) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", 1, true) {
		t.Fatal("0% rollout should always be disabled")
	}

	first := m.Enabled("canary", 42, false)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", 42, false); got != first {
			t.Fatal("rollout evaluation must be deterministic per user")
		}
	}

	if m.Enabled("canary", 0, false) {
		t.Fatal("percentage rollout requires a signed-in user")
	}
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off ")

	snap := m.Snapshot(123)
	if len(snap) != 3 {
		t.Fatalf("expected snapshot size 3, got %d", len(snap))
	}
	if !snap["x"] || snap["z"] {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}
