// Package dotpath provides dotted paths into ir.Node trees.
//
// A path names a location relative to a document root:
//   - "a.b" → field b of object field a
//   - "a[0]" → element 0 of array field a
//   - `"odd key".b` → fields needing quoting use Go string syntax
//
// The empty path names the root itself.
package dotpath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Step is one navigation step: an object field or an array index.
type Step struct {
	Field   string
	Index   int
	IsIndex bool
}

// Key returns an object-field step.
func Key(field string) Step {
	return Step{Field: field}
}

// Index returns an array-index step.
func Index(i int) Step {
	return Step{Index: i, IsIndex: true}
}

func (s Step) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	if quoteField(s.Field) {
		return strconv.Quote(s.Field)
	}
	return s.Field
}

// Path is a sequence of steps from a document root.
type Path []Step

// Child returns a new path extending p by one step. The receiver is not
// modified, so paths captured by fragments stay immutable.
func (p Path) Child(s Step) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, s)
}

func (p Path) String() string {
	buf := bytes.NewBuffer(nil)
	for _, s := range p {
		if !s.IsIndex && buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(s.String())
	}
	return buf.String()
}

func quoteField(f string) bool {
	if f == "" {
		return true
	}
	return strings.ContainsAny(f, ".[]\" '\t\n")
}

// Parse parses a dotted path string. The empty string parses to the empty
// path.
func Parse(s string) (Path, error) {
	var res Path
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			if i == 0 || len(res) == 0 {
				return nil, fmt.Errorf("unexpected '.' at %d in %q", i, s)
			}
			i++
			if i >= len(s) {
				return nil, fmt.Errorf("trailing '.' in %q", s)
			}
			if s[i] == '[' || s[i] == '.' {
				return nil, fmt.Errorf("unexpected %q at %d in %q", s[i], i, s)
			}
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("unterminated '[' at %d in %q", i, s)
			}
			idx, err := strconv.Atoi(s[i+1 : i+j])
			if err != nil {
				return nil, fmt.Errorf("bad index at %d in %q: %w", i, s, err)
			}
			res = append(res, Index(idx))
			i += j + 1
			continue
		}
		if s[i] == '"' {
			field, rest, err := unquoteField(s[i:])
			if err != nil {
				return nil, fmt.Errorf("bad quoted field at %d in %q: %w", i, s, err)
			}
			res = append(res, Key(field))
			i = len(s) - len(rest)
			continue
		}
		j := strings.IndexAny(s[i:], ".[")
		if j < 0 {
			res = append(res, Key(s[i:]))
			break
		}
		if j == 0 {
			return nil, fmt.Errorf("empty field at %d in %q", i, s)
		}
		res = append(res, Key(s[i:i+j]))
		i += j
	}
	return res, nil
}

func unquoteField(s string) (string, string, error) {
	// s starts with '"'; find its unescaped closing quote.
	for j := 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			field, err := strconv.Unquote(s[:j+1])
			if err != nil {
				return "", "", err
			}
			return field, s[j+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quote")
}
