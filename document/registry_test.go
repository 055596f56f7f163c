package document

import (
	"errors"
	"testing"

	"github.com/jsondoc/go-jsondoc/ir"
)

// serverFrag is a fragment class extension: typed accessors over a
// fragment whose schema tags it.
type serverFrag struct {
	frag *Fragment
}

func (s *serverFrag) Host() (string, error) {
	host, err := s.frag.Get("host")
	if err != nil {
		return "", err
	}
	return host.Value().String, nil
}

func TestFragmentClass(t *testing.T) {
	sch := mustSchema(t, `{
		"type": "object",
		"properties": {
			"server": {
				"type": "object",
				"__fragment_cls": "Server",
				"properties": {"host": {"type": "string", "default": "localhost"}}
			}
		}
	}`)
	reg := NewRegistry()
	reg.Register("Server", func(f *Fragment) any {
		return &serverFrag{frag: f}
	})
	doc := New(mustValue(t, `{"server": {}}`), sch, WithRegistry(reg))

	server, err := doc.Root().Get("server")
	if err != nil {
		t.Fatal(err)
	}
	ext, ok := server.Extension().(*serverFrag)
	if !ok {
		t.Fatalf("extension = %T", server.Extension())
	}
	host, err := ext.Host()
	if err != nil {
		t.Fatal(err)
	}
	if host != "localhost" {
		t.Errorf("host = %q", host)
	}
}

func TestUnknownFragmentClass(t *testing.T) {
	sch := mustSchema(t, `{
		"type": "object",
		"properties": {
			"server": {"type": "object", "__fragment_cls": "Nope"}
		}
	}`)
	doc := New(mustValue(t, `{"server": {}}`), sch, WithRegistry(NewRegistry()))
	if _, err := doc.Root().Get("server"); !errors.Is(err, ErrUnknownFragmentClass) {
		t.Errorf("unknown class: %v", err)
	}
}

func TestRegistryClasses(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b", func(f *Fragment) any { return nil })
	reg.Register("a", func(f *Fragment) any { return nil })
	got := reg.Classes()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("classes = %v", got)
	}
}

func TestExtensionSharesStore(t *testing.T) {
	sch := mustSchema(t, `{
		"type": "object",
		"properties": {
			"server": {
				"type": "object",
				"__fragment_cls": "Server",
				"properties": {"host": {"type": "string", "default": "localhost"}}
			}
		}
	}`)
	reg := NewRegistry()
	reg.Register("Server", func(f *Fragment) any {
		return &serverFrag{frag: f}
	})
	doc := New(mustValue(t, `{"server": {}}`), sch, WithRegistry(reg))
	server, err := doc.Root().Get("server")
	if err != nil {
		t.Fatal(err)
	}
	if err := server.Set("host", ir.FromString("example.com")); err != nil {
		t.Fatal(err)
	}
	ext := server.Extension().(*serverFrag)
	host, err := ext.Host()
	if err != nil {
		t.Fatal(err)
	}
	if host != "example.com" {
		t.Errorf("extension read %q after write", host)
	}
}
