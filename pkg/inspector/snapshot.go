package inspector

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/vango-dev/vnative/pkg/widget"
)

// Node is a JSON snapshot of a native view and its subtree.
type Node struct {
	Type     string         `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []Node         `json:"children,omitempty"`
}

// Snapshot copies the view tree rooted at n. Property values that cannot be
// encoded as JSON are replaced by their Go type name. A nil view yields a
// zero Node.
func Snapshot(n widget.Node) Node {
	if n == nil {
		return Node{}
	}
	out := Node{Type: n.TypeName()}
	if t, ok := n.(widget.TextNode); ok {
		out.Text = t.Text()
	}

	props := n.Props()
	if len(props) > 0 {
		out.Props = make(map[string]any, len(props))
		for k, v := range props {
			if k == widget.TextProperty && out.Text != "" {
				continue
			}
			out.Props[k] = encodable(v)
		}
		if len(out.Props) == 0 {
			out.Props = nil
		}
	}

	n.EachChild(func(c widget.Node) bool {
		out.Children = append(out.Children, Snapshot(c))
		return true
	})
	return out
}

// Count returns the number of views in the snapshot.
func (n Node) Count() int {
	if n.Type == "" {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// PropKeys returns the snapshot's property keys in order.
func (n Node) PropKeys() []string {
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func encodable(v any) any {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case string, bool, int, int32, int64, uint, uint32, uint64, float32, float64:
		return v
	case widget.Node:
		return fmt.Sprintf("<%s>", v.(widget.Node).TypeName())
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("<%T>", v)
	}
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprintf("<%T>", v)
	}
	return v
}
