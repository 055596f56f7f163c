package dotpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Path
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "a", want: Path{Key("a")}},
		{in: "a.b.c", want: Path{Key("a"), Key("b"), Key("c")}},
		{in: "a[0]", want: Path{Key("a"), Index(0)}},
		{in: "a[0].b", want: Path{Key("a"), Index(0), Key("b")}},
		{in: "[3]", want: Path{Index(3)}},
		{in: "[0][1]", want: Path{Index(0), Index(1)}},
		{in: `"odd.key".b`, want: Path{Key("odd.key"), Key("b")}},
		{in: `"with \"quotes\""`, want: Path{Key(`with "quotes"`)}},

		{in: ".", wantErr: true},
		{in: "a.", wantErr: true},
		{in: "a..b", wantErr: true},
		{in: "a[", wantErr: true},
		{in: "a[x]", wantErr: true},
		{in: `"unterminated`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("Parse(%q) (-want +got):\n%s", tt.in, d)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"a.b.c", "a[0].b", "[3]", `"odd.key".b`} {
		p, err := Parse(in)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.String(); got != in {
			t.Errorf("Parse(%q).String() = %q", in, got)
		}
	}
}

func TestChildImmutable(t *testing.T) {
	base := Path{Key("a")}
	c1 := base.Child(Key("b"))
	c2 := base.Child(Key("c"))
	if c1.String() != "a.b" || c2.String() != "a.c" {
		t.Errorf("children = %q, %q", c1, c2)
	}
	if base.String() != "a" {
		t.Errorf("base mutated: %q", base)
	}
}
