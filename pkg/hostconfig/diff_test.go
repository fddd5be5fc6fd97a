package hostconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vnative/pkg/element"
)

func TestDiffIdenticalIsNil(t *testing.T) {
	tap := func() {}
	cases := []element.Props{
		{},
		{"color": "red", "width": 10},
		{"style": Style{"color": "red", "fontSize": 12}},
		{"style": map[string]any{"margin": 4}},
		{"children": "hello"},
		{"children": []any{element.Create("Label", nil, "x")}},
		{"dangerouslySetInnerHTML": map[string]any{"__html": "<b>x</b>"}},
		{"onTap": tap, "items": []string{"a", "b"}},
		{"a": nil},
		{"className": "big", "autoFocus": true},
	}
	for _, p := range cases {
		assert.Nil(t, Diff(nil, "Label", p, p, nil), "%v", p)
		assert.Nil(t, Diff(nil, "Label", p, p.Clone(), nil), "%v", p)
	}
}

func TestDiffStyleDeletion(t *testing.T) {
	prev := element.Props{"style": Style{"color": "red", "fontSize": 12}}
	next := element.Props{"style": Style{"fontSize": 14}}

	payload := Diff(nil, "Label", prev, next, nil)
	require.Len(t, payload, 1)
	assert.Equal(t, Update{Key: "style", Value: Style{"color": "", "fontSize": 14}}, payload[0])
}

func TestDiffStyleAddedWhole(t *testing.T) {
	payload := Diff(nil, "Label", element.Props{}, element.Props{"style": Style{"color": "red"}}, nil)
	v, ok := payload.Get("style")
	require.True(t, ok)
	assert.Equal(t, Style{"color": "red"}, v)
}

func TestDiffStyleRemoved(t *testing.T) {
	payload := Diff(nil, "Label", element.Props{"style": Style{"color": "red", "margin": 2}}, element.Props{}, nil)
	assert.Equal(t, Payload{{Key: "style", Value: Style{"color": "", "margin": ""}}}, payload)

	payload = Diff(nil, "Label", element.Props{"style": Style{"color": "red"}}, element.Props{"style": nil}, nil)
	assert.Equal(t, Payload{{Key: "style", Value: Style{"color": ""}}}, payload)
}

func TestDiffNullToNull(t *testing.T) {
	assert.Nil(t, Diff(nil, "Label", element.Props{"a": nil}, element.Props{"a": nil}, nil))
}

func TestDiffUnsetToNull(t *testing.T) {
	payload := Diff(nil, "Label", element.Props{}, element.Props{"a": nil, "b": 1}, nil)
	_, ok := payload.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, payload.Keys())
}

func TestDiffOrder(t *testing.T) {
	prev := element.Props{"z": 1, "y": 2, "keep": "same", "style": Style{"color": "red"}}
	next := element.Props{"keep": "same", "b": 1, "a": 2, "style": Style{"color": "blue"}, "y": nil}

	payload := Diff(nil, "Label", prev, next, nil)
	assert.Equal(t, []string{"y", "z", "a", "b", "style"}, payload.Keys())
	v, _ := payload.Get("y")
	assert.Nil(t, v)
}

func TestDiffReservedKeysOnRemoval(t *testing.T) {
	prev := element.Props{
		"children":                       "x",
		"dangerouslySetInnerHTML":        map[string]any{"__html": "a"},
		"suppressContentEditableWarning": true,
		"suppressHydrationWarning":       true,
		"autoFocus":                      true,
	}
	assert.Nil(t, Diff(nil, "Label", prev, element.Props{}, nil))
}

func TestDiffSuppressWarningsNeverQueued(t *testing.T) {
	next := element.Props{"suppressContentEditableWarning": true, "suppressHydrationWarning": true}
	assert.Nil(t, Diff(nil, "Label", element.Props{}, next, nil))
}

func TestDiffInnerHTML(t *testing.T) {
	html := func(s any) element.Props {
		return element.Props{"dangerouslySetInnerHTML": map[string]any{"__html": s}}
	}

	payload := Diff(nil, "HtmlView", element.Props{}, html("<p>a</p>"), nil)
	assert.Equal(t, Payload{{Key: "dangerouslySetInnerHTML", Value: "<p>a</p>"}}, payload)

	payload = Diff(nil, "HtmlView", html("<p>a</p>"), html("<p>b</p>"), nil)
	assert.Equal(t, Payload{{Key: "dangerouslySetInnerHTML", Value: "<p>b</p>"}}, payload)

	// Clearing is not supported.
	assert.Nil(t, Diff(nil, "HtmlView", html("<p>a</p>"), html(nil), nil))
}

func TestDiffChildren(t *testing.T) {
	payload := Diff(nil, "Label", element.Props{"children": "a"}, element.Props{"children": "b"}, nil)
	assert.Equal(t, Payload{{Key: "children", Value: "b"}}, payload)

	payload = Diff(nil, "Label", element.Props{"children": 1}, element.Props{"children": 2}, nil)
	assert.Equal(t, Payload{{Key: "children", Value: "2"}}, payload)

	el := element.Create("Label", nil)
	assert.Nil(t, Diff(nil, "StackLayout", element.Props{"children": "a"}, element.Props{"children": el}, nil))
}

func TestDiffFuncsCompareByIdentity(t *testing.T) {
	mk := func(n int) func() int { return func() int { return n } }
	same := mk(1)

	assert.Nil(t, Diff(nil, "Button", element.Props{"onTap": same}, element.Props{"onTap": same}, nil))
	assert.Nil(t, Diff(nil, "Button", element.Props{"onTap": strings.ToUpper}, element.Props{"onTap": strings.ToUpper}, nil))

	payload := Diff(nil, "Button", element.Props{"onTap": mk(1)}, element.Props{"onTap": mk(2)}, nil)
	require.NotNil(t, payload)
	_, ok := payload.Get("onTap")
	assert.True(t, ok)
	assert.NotNil(t, Diff(nil, "Button", element.Props{"onTap": strings.ToUpper}, element.Props{"onTap": strings.ToLower}, nil))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KeyChildren, Classify("children"))
	assert.Equal(t, KeyStyle, Classify("style"))
	assert.Equal(t, KeyInnerHTML, Classify("dangerouslySetInnerHTML"))
	assert.Equal(t, KeyClassName, Classify("className"))
	assert.Equal(t, KeyGeneric, Classify("color"))
	assert.Equal(t, "autoFocus", KeyAutoFocus.String())
}

// Applying Diff(p1, p2) to a view built from p1 must leave it equal to a
// view built from p2.
func TestDiffApplyMatchesFreshInstance(t *testing.T) {
	pairs := []struct {
		name   string
		p1, p2 element.Props
	}{
		{"style", element.Props{"style": Style{"color": "red", "fontSize": 12}}, element.Props{"style": Style{"fontSize": 14}}},
		{"added style", element.Props{}, element.Props{"style": Style{"color": "red"}}},
		{"removed style", element.Props{"style": Style{"color": "red"}}, element.Props{}},
		{"generic", element.Props{"a": 1, "b": "x"}, element.Props{"b": "y", "c": true}},
		{"className", element.Props{"className": "big"}, element.Props{}},
		{"className changed", element.Props{"className": "big"}, element.Props{"className": "small"}},
		{"null", element.Props{"a": 1}, element.Props{"a": nil}},
		{"html", element.Props{}, element.Props{"dangerouslySetInnerHTML": map[string]any{"__html": "<i>x</i>"}}},
	}

	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestHost()
			updated, err := h.CreateInstance("StackLayout", tc.p1, nil, Context{}, &testHandle{})
			require.NoError(t, err)
			if payload := h.PrepareUpdate(updated, "StackLayout", tc.p1, tc.p2, nil, Context{}); payload != nil {
				h.CommitUpdate(updated, payload, "StackLayout", tc.p1, tc.p2, &testHandle{})
			}

			fresh, err := h.CreateInstance("StackLayout", tc.p2, nil, Context{}, &testHandle{})
			require.NoError(t, err)
			assert.Equal(t, fresh.Props(), updated.Props())
		})
	}
}
