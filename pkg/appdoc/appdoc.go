// Package appdoc decodes declarative YAML application documents into element
// trees.
//
// A document is a view with optional children:
//
//	type: StackLayout
//	props:
//	  orientation: vertical
//	children:
//	  - type: Label
//	    key: title
//	    text: Hello
//	    props:
//	      style: {color: red}
//	  - type: Button
//	    text: Go
//
// The type Fragment groups children without a view of its own.
package appdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	vnerrors "github.com/vango-dev/vnative/internal/errors"
	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/widget"
)

// FragmentType is the document type for element.Fragment.
const FragmentType = "Fragment"

// Document is one node of an application document.
type Document struct {
	Type     string         `yaml:"type"`
	Key      string         `yaml:"key,omitempty"`
	Props    map[string]any `yaml:"props,omitempty"`
	Text     string         `yaml:"text,omitempty"`
	Children []*Document    `yaml:"children,omitempty"`
}

// Options configures decoding.
type Options struct {
	// Types validates element types. Default: widget.DefaultRegistry().
	Types *widget.Registry
}

// Decode reads a document and checks every type against the registry.
// Parse failures are E020 and unknown types E021.
func Decode(r io.Reader, opts Options) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, vnerrors.New("E020").WithDetail("document is empty")
		}
		return nil, vnerrors.New("E020").WithDetail(err.Error()).Wrap(err)
	}

	types := opts.Types
	if types == nil {
		types = widget.DefaultRegistry()
	}
	if err := doc.validate(types, doc.Type); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeBytes decodes data. See Decode.
func DecodeBytes(data []byte, opts Options) (*Document, error) {
	return Decode(bytes.NewReader(data), opts)
}

// Load reads and decodes the document at path.
func Load(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vnerrors.New("E020").WithDetailf("read %s", path).Wrap(err)
	}
	doc, err := DecodeBytes(data, opts)
	if err != nil {
		var ve *vnerrors.Error
		if errors.As(err, &ve) {
			ve.Detail = path + ": " + ve.Detail
		}
		return nil, err
	}
	return doc, nil
}

func (d *Document) validate(types *widget.Registry, path string) error {
	switch {
	case d == nil:
		return vnerrors.New("E020").WithDetailf("%s: empty child", path)
	case d.Type == "":
		return vnerrors.New("E020").WithDetailf("%s: missing type", pathOr(path))
	case d.Type != FragmentType && !types.Has(d.Type):
		return vnerrors.New("E021").WithDetailf("%s: unknown type %q", path, d.Type)
	}
	if _, ok := d.Props["children"]; ok {
		return vnerrors.New("E020").WithDetailf("%s: use children, not props.children", path)
	}
	for i, c := range d.Children {
		childPath := fmt.Sprintf("%s/%d", path, i)
		if c != nil && c.Type != "" {
			childPath = fmt.Sprintf("%s/%s[%d]", path, c.Type, i)
		}
		if err := c.validate(types, childPath); err != nil {
			return err
		}
	}
	return nil
}

func pathOr(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

// Element converts the document to an element tree. Text becomes the first
// child of the element.
func (d *Document) Element() *element.Element {
	var typ any = d.Type
	if d.Type == FragmentType {
		typ = element.Fragment
	}

	props := make(element.Props, len(d.Props))
	for k, v := range d.Props {
		props[k] = normalize(v)
	}

	var children []any
	if d.Text != "" {
		children = append(children, d.Text)
	}
	for _, c := range d.Children {
		children = append(children, c.Element())
	}

	el := element.Create(typ, props, children...)
	if d.Key != "" {
		el = el.WithKey(d.Key)
	}
	return el
}

// Types lists the distinct types used by the document, in first-use order.
func (d *Document) Types() []string {
	seen := map[string]bool{}
	var out []string
	var walk func(*Document)
	walk = func(n *Document) {
		if !seen[n.Type] {
			seen[n.Type] = true
			out = append(out, n.Type)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(d)
	return out
}

// normalize converts YAML maps and lists into the shapes the host config
// reads: map[string]any and []any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[strings.TrimSpace(fmt.Sprint(k))] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
