package appdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vnerrors "github.com/vango-dev/vnative/internal/errors"
	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/widget"
)

const sampleDoc = `
type: StackLayout
props:
  orientation: vertical
children:
  - type: Label
    key: title
    text: Hello
    props:
      style:
        color: red
        fontSize: 18
  - type: Fragment
    children:
      - type: button
        text: Go
      - type: Label
`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDoc), Options{})
	require.NoError(t, err)

	assert.Equal(t, "StackLayout", doc.Type)
	assert.Equal(t, "vertical", doc.Props["orientation"])
	require.Len(t, doc.Children, 2)
	assert.Equal(t, "title", doc.Children[0].Key)
	assert.Equal(t, []string{"StackLayout", "Label", "Fragment", "button"}, doc.Types())
}

func TestElement(t *testing.T) {
	doc, err := DecodeBytes([]byte(sampleDoc), Options{})
	require.NoError(t, err)

	el := doc.Element()
	assert.Equal(t, "StackLayout", el.Type)
	children, ok := el.Children().([]any)
	require.True(t, ok)
	require.Len(t, children, 2)

	title := children[0].(*element.Element)
	assert.Equal(t, "title", title.Key)
	assert.Equal(t, "Hello", title.Children())
	style, ok := title.Props["style"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "red", style["color"])
	assert.Equal(t, 18, style["fontSize"])

	frag := children[1].(*element.Element)
	assert.True(t, element.IsFragment(frag.Type))
	_, hasChildren := children[1].(*element.Element).Props["children"]
	assert.True(t, hasChildren)

	leaf := frag.Children().([]any)[1].(*element.Element)
	assert.NotContains(t, leaf.Props, element.ChildrenKey)
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := DecodeBytes([]byte("type: StackLayout\nchildren:\n  - type: Marquee\n"), Options{})
	require.Error(t, err)
	assert.True(t, vnerrors.HasCode(err, "E021"))
	assert.Contains(t, err.Error(), "Marquee")
}

func TestDecodeCustomTypes(t *testing.T) {
	types := widget.NewRegistry()
	types.Register("Marquee", func() widget.Node { return widget.NewPlain("Marquee") })

	_, err := DecodeBytes([]byte("type: Marquee\n"), Options{Types: types})
	assert.NoError(t, err)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"syntax", "type: [unclosed"},
		{"unknown field", "type: Label\ncolour: red\n"},
		{"missing type", "props: {a: 1}\n"},
		{"missing child type", "type: StackLayout\nchildren:\n  - text: hi\n"},
		{"children prop", "type: StackLayout\nprops:\n  children: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tt.doc), Options{})
			require.Error(t, err)
			assert.True(t, vnerrors.HasCode(err, "E020"), err.Error())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	doc, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "StackLayout", doc.Type)

	_, err = Load(filepath.Join(dir, "missing.yaml"), Options{})
	assert.True(t, vnerrors.HasCode(err, "E020"))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("type: Nope\n"), 0o644))
	_, err = Load(bad, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestNormalize(t *testing.T) {
	in := map[any]any{"a": []any{map[any]any{1: "x"}}}
	out := normalize(in).(map[string]any)
	assert.Equal(t, map[string]any{"1": "x"}, out["a"].([]any)[0])
}
