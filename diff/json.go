package diff

import (
	"encoding/json"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jsondoc/go-jsondoc/encode"
	"github.com/jsondoc/go-jsondoc/ir"
)

// JSON returns the operations transforming from into to, marshalled as
// a JSON Patch document.
func JSON(from, to *ir.Node) ([]byte, error) {
	ops := Ops(from, to)
	if ops == nil {
		ops = []Op{}
	}
	return json.MarshalIndent(ops, "", "  ")
}

// Text returns a human readable line diff of the indented renderings
// of from and to. When colored is true, insertions and deletions are
// colorized for terminal display.
func Text(from, to *ir.Node, colored bool) string {
	a := encode.String(from)
	b := encode.String(to)
	dmp := diffpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lines)
	if colored {
		return dmp.DiffPrettyText(diffs)
	}
	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitKeepNL(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func splitKeepNL(s string) []string {
	var res []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			res = append(res, s+"\n")
			break
		}
		res = append(res, s[:i+1])
		s = s[i+1:]
	}
	return res
}
