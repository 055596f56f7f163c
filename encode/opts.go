package encode

type EncodeOption func(*EncState)

// Indent sets the number of spaces per nesting level.  The default
// is 2.  Indent(0) produces compact single-line output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
