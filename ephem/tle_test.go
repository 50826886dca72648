package ephem

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// ISS sample TLE, epoch 2021-10-02.
const (
	issLine1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issLine2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func TestNewSGP4FromTLE_Validation(t *testing.T) {
	if _, err := NewSGP4FromTLE(issLine1, issLine2); err != nil {
		t.Fatalf("valid TLE rejected: %v", err)
	}

	cases := []struct {
		name   string
		l1, l2 string
	}{
		{"truncated line 1", issLine1[:40], issLine2},
		{"swapped lines", issLine2, issLine1},
		{"catalog mismatch", issLine1, "2 25545  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"},
		{"empty", "", ""},
	}
	for _, c := range cases {
		if _, err := NewSGP4FromTLE(c.l1, c.l2); !errors.Is(err, ErrBadTLE) {
			t.Errorf("%s: err = %v, want ErrBadTLE", c.name, err)
		}
	}
}

// Exact orbital values belong to the propagation library; the adapter is
// checked for physically sane output and frame motion only.
func TestSGP4_PositionECEF(t *testing.T) {
	prop, err := NewSGP4FromTLE(issLine1, issLine2)
	if err != nil {
		t.Fatalf("NewSGP4FromTLE: %v", err)
	}

	t1 := time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC)
	p1, err := prop.PositionECEF(t1)
	if err != nil {
		t.Fatalf("PositionECEF: %v", err)
	}
	if r := p1.Norm(); r < 6500 || r > 7100 {
		t.Errorf("geocentric radius = %.1f km, want low-orbit range", r)
	}

	p2, err := prop.PositionECEF(t1.Add(5 * time.Minute))
	if err != nil {
		t.Fatalf("PositionECEF +5m: %v", err)
	}
	if p1 == p2 {
		t.Error("position unchanged over 5 minutes")
	}
}

func TestSGP4_Subpoint(t *testing.T) {
	prop, err := NewSGP4FromTLE(issLine1, issLine2)
	if err != nil {
		t.Fatalf("NewSGP4FromTLE: %v", err)
	}

	sp, err := prop.Subpoint(time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Subpoint: %v", err)
	}
	// Inclination 51.6 deg bounds the subpoint latitude.
	if sp.LatDeg < -52 || sp.LatDeg > 52 {
		t.Errorf("subpoint latitude = %.2f, want within +/-52", sp.LatDeg)
	}
	if sp.LonDeg < -180 || sp.LonDeg >= 180 {
		t.Errorf("subpoint longitude = %.2f, want normalized to [-180, 180)", sp.LonDeg)
	}
	if sp.AltKm < 300 || sp.AltKm > 500 {
		t.Errorf("altitude = %.1f km, want low-orbit range", sp.AltKm)
	}
}

func TestParseTLE(t *testing.T) {
	input := strings.Join([]string{
		"ISS (ZARYA)",
		issLine1,
		issLine2,
		"",
		"BROKEN SAT",
		"1 99999U truncated",
		"2 99999 also truncated",
		"",
		"0 NAMED WITH PREFIX",
		issLine1,
		issLine2,
	}, "\n")

	entries, err := ParseTLE(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTLE: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (broken group skipped): %+v", len(entries), entries)
	}

	if entries[0].Name != "ISS (ZARYA)" || entries[0].NoradID != "25544" {
		t.Errorf("entry 0 = %q/%q, want ISS (ZARYA)/25544", entries[0].Name, entries[0].NoradID)
	}
	// The alternate 3LE name prefix is stripped.
	if entries[1].Name != "NAMED WITH PREFIX" {
		t.Errorf("entry 1 name = %q, want prefix stripped", entries[1].Name)
	}

	if _, err := entries[0].Propagator(); err != nil {
		t.Errorf("Propagator on valid entry: %v", err)
	}
}

func TestParseTLE_Empty(t *testing.T) {
	entries, err := ParseTLE(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseTLE: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from empty input", len(entries))
	}
}
