package encode

import (
	"bytes"
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

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []EncodeOption
		want string
	}{
		{
			name: "object",
			in:   `{"a":1,"b":"two"}`,
			want: "{\n  \"a\": 1,\n  \"b\": \"two\"\n}\n",
		},
		{
			name: "nested",
			in:   `{"xs":[1,true,null]}`,
			want: "{\n  \"xs\": [\n    1,\n    true,\n    null\n  ]\n}\n",
		},
		{
			name: "empty containers",
			in:   `{"o":{},"a":[]}`,
			want: "{\n  \"o\": {},\n  \"a\": []\n}\n",
		},
		{
			name: "compact",
			in:   `{"a":1,"xs":[2,3]}`,
			opts: []EncodeOption{Indent(0)},
			want: `{"a":1,"xs":[2,3]}` + "\n",
		},
		{
			name: "wide indent",
			in:   `{"a":1}`,
			opts: []EncodeOption{Indent(4)},
			want: "{\n    \"a\": 1\n}\n",
		},
		{
			name: "scalar",
			in:   `"hi"`,
			want: "\"hi\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(mustValue(t, tt.in), &buf, tt.opts...); err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tt.want, buf.String()); d != "" {
				t.Errorf("encoding (-want +got):\n%s", d)
			}
		})
	}
}

func TestString(t *testing.T) {
	got := String(mustValue(t, `{"a":1}`))
	if got != "{\n  \"a\": 1\n}" {
		t.Errorf("String = %q", got)
	}
}

func TestColorsEscapePercent(t *testing.T) {
	c := NewColors()
	got := c.Color(ir.StringType, ValueColor, `"100%"`)
	// the sprintf wrapper must not interpret the value as a format string
	if !bytes.Contains([]byte(got), []byte("100%")) {
		t.Errorf("colored = %q", got)
	}
}
