package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vnative/pkg/inspector"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatTree(t *testing.T) {
	tree := inspector.Node{
		Type:  "StackLayout",
		Props: map[string]any{"orientation": "vertical"},
		Children: []inspector.Node{
			{Type: "Label", Text: "Hello"},
			{Type: "StackLayout", Children: []inspector.Node{{Type: "Button", Text: "Go"}}},
		},
	}

	lines := strings.Split(strings.TrimRight(formatTree(tree), "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "StackLayout")
	assert.Contains(t, lines[0], "orientation=vertical")
	assert.Contains(t, lines[1], "├── ")
	assert.Contains(t, lines[1], `"Hello"`)
	assert.Contains(t, lines[2], "└── ")
	assert.Contains(t, lines[3], "    └── ")
	assert.Contains(t, lines[3], `"Go"`)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(doc, []byte(`type: StackLayout
children:
  - type: Label
    text: Hello
  - type: Button
    text: Go
`), 0644))

	out, err := execute(t, "render", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "ContentView")
	assert.Contains(t, out, "StackLayout")
	assert.Contains(t, out, `"Hello"`)
	assert.Contains(t, out, `"Go"`)
}

func TestRenderCommandUnknownType(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("type: Blink\n"), 0644))

	_, err := execute(t, "render", "--dir", dir, doc)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "E021")
}

func TestTypesCommand(t *testing.T) {
	out, err := execute(t, "types")
	require.NoError(t, err)

	assert.Contains(t, out, "StackLayout\n")
	assert.Contains(t, out, "Label\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
