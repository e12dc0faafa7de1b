package version

import (
	"math/rand"
	"testing"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.0.0", "1.0.0.0"},
		{"1.2.3.4", "1.2.3.4"},
		{"1.0.0-beta", "1.0.0.0-beta"},
		{"1.0.0-beta.2", "1.0.0.0-beta.2"},
		{"1.0.0+build", "1.0.0.0"},
		{"1.0.0-beta+build", "1.0.0.0-beta"},
	}
	for _, tc := range tests {
		v, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		if got := v.String(); got != tc.want {
			t.Errorf("Parse(%q).String() = %q, want %q", tc.in, got, tc.want)
		}
		if got := v.Original(); got != tc.in {
			t.Errorf("Parse(%q).Original() = %q, want %q", tc.in, got, tc.in)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "a.b.c", "1.2.3.4.5", "1..2", "1.0.0-"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): want error, got nil", in)
		}
	}
}

func TestCompareOrdering(t *testing.T) {
	ordered := []string{
		"0.0.0.0",
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-alpha.beta",
		"1.0.0-beta",
		"1.0.0-beta.2",
		"1.0.0-beta.11",
		"1.0.0-rc.1",
		"1.0.0",
		"1.0.0.1",
		"2.0.0",
	}
	vs := make([]Version, len(ordered))
	for i, s := range ordered {
		vs[i] = MustParse(s)
	}
	for i := 0; i < len(vs); i++ {
		for j := i + 1; j < len(vs); j++ {
			if !vs[i].Less(vs[j]) {
				t.Errorf("%s should be < %s", vs[i], vs[j])
			}
		}
	}
}

func TestSortVersionsShuffle(t *testing.T) {
	ordered := []Version{
		MustParse("0.0.1"), MustParse("0.2.0"), MustParse("1.0.0-a"), MustParse("1.0.0"),
	}
	got := append([]Version(nil), ordered...)
	for i := 0; i < 10; i++ {
		rand.Shuffle(len(got), func(a, b int) { got[a], got[b] = got[b], got[a] })
		SortVersions(got)
		for i := range got {
			if !got[i].Equal(ordered[i]) {
				t.Fatalf("SortVersions produced %v, want %v", got, ordered)
			}
		}
	}
}

func TestIsZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Error("Zero.IsZero() = false")
	}
	if MustParse("0.0.0.1").IsZero() {
		t.Error("0.0.0.1 should not be zero")
	}
}
