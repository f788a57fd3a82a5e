package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cascade/pkg/geom"
	"github.com/matzehuels/cascade/pkg/validate"
)

// Format identifies a scene file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrInvalid is wrapped by every error caused by malformed scene content.
var ErrInvalid = errors.New("invalid scene")

// ErrUnknownFormat is returned when a scene format cannot be determined.
var ErrUnknownFormat = errors.New("unknown scene format")

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// File is the on-disk representation of a scene: a root container with a
// size and a tree of positioned elements.
//
//	name: login
//	width: 320
//	height: 480
//	elements:
//	  - id: header
//	    x: 0
//	    y: 0
//	    width: 320
//	    height: 60
//	    children: []
type File struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	Width    float64   `json:"width" yaml:"width" toml:"width" validate:"gte=0"`
	Height   float64   `json:"height" yaml:"height" toml:"height" validate:"gte=0"`
	Elements []Element `json:"elements" yaml:"elements" toml:"elements" validate:"dive"`
}

// Element is one positioned element of a scene file. Coordinates are
// relative to the parent element.
type Element struct {
	ID       string    `json:"id" yaml:"id" toml:"id" validate:"required"`
	X        float64   `json:"x" yaml:"x" toml:"x"`
	Y        float64   `json:"y" yaml:"y" toml:"y"`
	Width    float64   `json:"width" yaml:"width" toml:"width" validate:"gte=0"`
	Height   float64   `json:"height" yaml:"height" toml:"height" validate:"gte=0"`
	Children []Element `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty" validate:"dive"`
}

// Read decodes a scene in the given format from r and builds its Box tree.
//
// Read fails when the content cannot be decoded, when an element has no id
// or a negative size, or when two elements share an id. Content errors wrap
// ErrInvalid. Read does not close r.
func Read(r io.Reader, format Format) (*Box, error) {
	f, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// Decode parses a scene file without building the tree. Unknown keys are
// rejected in every format.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: decode json: %v", ErrInvalid, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalid, err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("%w: decode toml: %v", ErrInvalid, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, validate.Message(err))
	}
	return &f, nil
}

// Build converts the file into a Box tree rooted at a box named after the
// scene and sized to its width and height.
func (f *File) Build() (*Box, error) {
	seen := make(map[string]bool)
	root := NewBox(f.Name, geom.R(0, 0, f.Width, f.Height))
	for _, e := range f.Elements {
		b, err := e.build(seen)
		if err != nil {
			return nil, err
		}
		root.Add(b)
	}
	return root, nil
}

func (e Element) build(seen map[string]bool) (*Box, error) {
	if seen[e.ID] {
		return nil, fmt.Errorf("%w: duplicate element id %q", ErrInvalid, e.ID)
	}
	seen[e.ID] = true
	b := NewBox(e.ID, geom.R(e.X, e.Y, e.Width, e.Height))
	for _, c := range e.Children {
		kid, err := c.build(seen)
		if err != nil {
			return nil, err
		}
		b.Add(kid)
	}
	return b, nil
}

// Load reads a scene file, choosing the decoder from the file extension.
func Load(path string) (*Box, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	root, err := Read(fh, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// FromBox converts a Box tree back into its file representation.
func FromBox(root *Box) *File {
	f := &File{Name: root.Name, Width: root.Rect.W, Height: root.Rect.H}
	for _, k := range root.Kids {
		f.Elements = append(f.Elements, elementFromBox(k))
	}
	return f
}

func elementFromBox(b *Box) Element {
	e := Element{ID: b.Name, X: b.Rect.X, Y: b.Rect.Y, Width: b.Rect.W, Height: b.Rect.H}
	for _, k := range b.Kids {
		e.Children = append(e.Children, elementFromBox(k))
	}
	return e
}

// Write encodes root to w in the given format.
func Write(w io.Writer, root *Box, format Format) error {
	f := FromBox(root)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Marshal is Write into a byte slice.
func Marshal(root *Box, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, root, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
