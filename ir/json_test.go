package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"object", `{"b":1,"a":2}`},
		{"nested", `{"xs":[1,2.5,"three",null,true],"o":{"k":"v"}}`},
		{"huge number", `{"n":1e400}`},
		{"empty containers", `{"o":{},"a":[]}`},
		{"scalar", `"hello"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := FromJSON([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			out, err := ToJSON(node)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tt.in, string(out)); d != "" {
				t.Errorf("round trip (-want +got):\n%s", d)
			}
		})
	}
}

func TestFromJSONFieldOrder(t *testing.T) {
	node, err := FromJSON([]byte(`{"z":1,"m":2,"a":3}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"z", "m", "a"}
	if d := cmp.Diff(want, node.Fields); d != "" {
		t.Errorf("field order (-want +got):\n%s", d)
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":}`, `1 2`} {
		_, err := FromJSON([]byte(in))
		if err == nil {
			t.Errorf("FromJSON(%q) succeeded", in)
			continue
		}
		if !errors.Is(err, ErrDecode) {
			t.Errorf("FromJSON(%q) error %v does not wrap ErrDecode", in, err)
		}
	}
}

func TestToAnyFromAny(t *testing.T) {
	v := map[string]any{
		"name": "alice",
		"xs":   []any{int64(1), "two"},
		"ok":   true,
	}
	node, err := FromAny(v)
	if err != nil {
		t.Fatal(err)
	}
	back := ToAny(node)
	m, ok := back.(map[string]any)
	if !ok {
		t.Fatalf("ToAny returned %T", back)
	}
	if m["name"] != "alice" || m["ok"] != true {
		t.Errorf("ToAny lost scalars: %v", m)
	}
	xs, ok := m["xs"].([]any)
	if !ok || len(xs) != 2 {
		t.Fatalf("ToAny xs = %v", m["xs"])
	}
}

func TestFromAnyNode(t *testing.T) {
	n := FromInt(4)
	got, err := FromAny(n)
	if err != nil {
		t.Fatal(err)
	}
	if got == n {
		t.Error("FromAny of a *Node did not copy it")
	}
	if !Equal(got, n) {
		t.Errorf("FromAny copy = %v, want %v", got, n)
	}
}
