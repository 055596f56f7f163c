package diff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jsondoc/go-jsondoc/ir"
)

func mustValue(t *testing.T, d string) *ir.Node {
	t.Helper()
	v, err := ir.FromJSON([]byte(d))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func opStrings(ops []Op) []string {
	if len(ops) == 0 {
		return nil
	}
	res := make([]string, len(ops))
	for i, op := range ops {
		s := op.Op + " " + op.Path
		if op.Value != nil {
			d, _ := ir.ToJSON(op.Value)
			s += " " + string(d)
		}
		res[i] = s
	}
	return res
}

func TestOps(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{
			name: "equal",
			from: `{"a": 1, "b": [true, null]}`,
			to:   `{"a": 1, "b": [true, null]}`,
			want: nil,
		},
		{
			name: "scalar replace",
			from: `{"a": 1}`,
			to:   `{"a": 2}`,
			want: []string{`replace /a 2`},
		},
		{
			name: "type change replaces",
			from: `{"a": 1}`,
			to:   `{"a": "one"}`,
			want: []string{`replace /a "one"`},
		},
		{
			name: "add field",
			from: `{"a": 1}`,
			to:   `{"a": 1, "b": 2}`,
			want: []string{`add /b 2`},
		},
		{
			name: "remove field",
			from: `{"a": 1, "b": 2}`,
			to:   `{"a": 1}`,
			want: []string{`remove /b`},
		},
		{
			name: "nested recursion",
			from: `{"server": {"host": "a", "port": 1}}`,
			to:   `{"server": {"host": "b", "port": 1}}`,
			want: []string{`replace /server/host "b"`},
		},
		{
			name: "escaped pointer",
			from: `{"a/b": 1}`,
			to:   `{"a/b": 2}`,
			want: []string{`replace /a~1b 2`},
		},
		{
			name: "array element replace",
			from: `{"xs": [1, 2, 3]}`,
			to:   `{"xs": [1, 9, 3]}`,
			want: []string{`remove /xs/1`, `add /xs/1 9`},
		},
		{
			name: "array append",
			from: `{"xs": [1, 2]}`,
			to:   `{"xs": [1, 2, 3]}`,
			want: []string{`add /xs/2 3`},
		},
		{
			name: "array remove head",
			from: `{"xs": [1, 2, 3]}`,
			to:   `{"xs": [2, 3]}`,
			want: []string{`remove /xs/0`},
		},
		{
			name: "matching containers recurse",
			from: `{"xs": [{"n": 1}]}`,
			to:   `{"xs": [{"n": 2}]}`,
			want: []string{`replace /xs/0/n 2`},
		},
		{
			name: "root type change",
			from: `[1]`,
			to:   `{"a": 1}`,
			want: []string{`replace  {"a":1}`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := mustValue(t, tt.from)
			to := mustValue(t, tt.to)
			ops := Ops(from, to)
			if d := cmp.Diff(tt.want, opStrings(ops)); d != "" {
				t.Errorf("ops (-want +got):\n%s", d)
			}
		})
	}
}

func TestOpsDoNotAliasInputs(t *testing.T) {
	from := mustValue(t, `{"a": 1}`)
	to := mustValue(t, `{"a": {"b": 2}}`)
	ops := Ops(from, to)
	if len(ops) != 1 {
		t.Fatalf("ops = %v", ops)
	}
	ops[0].Value.Values[0].Int64 = nil
	if ir.Get(to, "a").Values[0].Int64 == nil {
		t.Error("op value aliases the input tree")
	}
}

func TestJSON(t *testing.T) {
	d, err := JSON(mustValue(t, `{"a": 1}`), mustValue(t, `{"a": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(d), `"op": "replace"`) {
		t.Errorf("patch json = %s", d)
	}
	empty, err := JSON(mustValue(t, `{}`), mustValue(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(empty)) != "[]" {
		t.Errorf("empty patch = %s", empty)
	}
}

func TestText(t *testing.T) {
	got := Text(mustValue(t, `{"a": 1}`), mustValue(t, `{"a": 2}`), false)
	if !strings.Contains(got, `- `) || !strings.Contains(got, `+ `) {
		t.Errorf("text diff:\n%s", got)
	}
	if !strings.Contains(got, `"a"`) {
		t.Errorf("text diff missing content:\n%s", got)
	}
}
