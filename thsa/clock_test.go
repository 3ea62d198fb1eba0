package thsa

import "testing"

func TestClockModel_Frozen(t *testing.T) {
	c := NewClockModel(ClockSpec{Active: false})

	if c.IsActive() {
		t.Fatal("frozen clock reported active")
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	for _, tau := range []float64{-5, 0, 3.2, 100} {
		if got := c.IntOfTime(tau); got != 1 {
			t.Errorf("IntOfTime(%v) = %d, want 1", tau, got)
		}
		if got := c.FloorInt(tau); got != 1 {
			t.Errorf("FloorInt(%v) = %d, want 1", tau, got)
		}
		if got := c.CeilInt(tau); got != 1 {
			t.Errorf("CeilInt(%v) = %d, want 1", tau, got)
		}
	}
}

func TestClockModel_Active(t *testing.T) {
	// tsteps = [0, 1, 2]
	c := NewClockModel(ClockSpec{Active: true, Horizon: 2, Dt: 1})

	if !c.IsActive() {
		t.Fatal("active clock reported frozen")
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	for i, want := range []float64{0, 1, 2} {
		got, ok := c.TimeAt(TimeIndex(i + 1))
		if !ok || got != want {
			t.Errorf("TimeAt(%d) = (%v,%v), want (%v,true)", i+1, got, ok, want)
		}
	}
}

func TestClockModel_IntOfTime(t *testing.T) {
	c := NewClockModel(ClockSpec{Active: true, Horizon: 2, Dt: 1})

	cases := []struct {
		tau  float64
		want TimeIndex
	}{
		{0, 1},
		{1, 2},
		{2, 3},
		{1 + 5e-8, 2}, // within tolerance
		{1.4, 2},      // nearest match
		{1.6, 3},
	}
	for _, c2 := range cases {
		if got := c.IntOfTime(c2.tau); got != c2.want {
			t.Errorf("IntOfTime(%v) = %d, want %d", c2.tau, got, c2.want)
		}
	}
}

func TestClockModel_FloorCeil(t *testing.T) {
	c := NewClockModel(ClockSpec{Active: true, Horizon: 2, Dt: 1})

	if got := c.FloorInt(1.7); got != 2 {
		t.Errorf("FloorInt(1.7) = %d, want 2", got)
	}
	if got := c.CeilInt(1.2); got != 3 {
		t.Errorf("CeilInt(1.2) = %d, want 3", got)
	}
	if got := c.FloorInt(-1); got != 0 {
		t.Errorf("FloorInt(-1) = %d, want 0", got)
	}
	if got := c.CeilInt(5); got != 0 {
		t.Errorf("CeilInt(5) = %d, want 0", got)
	}
}

func TestClockModel_IndicesInInterval(t *testing.T) {
	c := NewClockModel(ClockSpec{Active: true, Horizon: 2, Dt: 1})

	got := c.IndicesInInterval(0.5, 2)
	want := []TimeIndex{2, 3}
	if len(got) != len(want) {
		t.Fatalf("IndicesInInterval = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IndicesInInterval[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	frozen := NewClockModel(ClockSpec{Active: false})
	if got := frozen.IndicesInInterval(0, 0); len(got) != 1 || got[0] != 1 {
		t.Errorf("frozen IndicesInInterval(0,0) = %v, want [1]", got)
	}
	if got := frozen.IndicesInInterval(1, 2); got != nil {
		t.Errorf("frozen IndicesInInterval(1,2) = %v, want nil", got)
	}
}
