package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/vnative/pkg/inspector"
)

var (
	typeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	propStyle = lipgloss.NewStyle().Faint(true)
	lineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// formatTree renders a view snapshot as an indented tree, one view per line:
//
//	StackLayout orientation=vertical
//	├── Label "Hello"
//	└── Button "Go"
func formatTree(root inspector.Node) string {
	var b strings.Builder
	writeNode(&b, root, "", "", true)
	return b.String()
}

func writeNode(b *strings.Builder, n inspector.Node, prefix, branch string, top bool) {
	b.WriteString(lineStyle.Render(prefix + branch))
	b.WriteString(typeStyle.Render(n.Type))
	if n.Text != "" {
		b.WriteString(" ")
		b.WriteString(textStyle.Render(fmt.Sprintf("%q", n.Text)))
	}
	for _, k := range n.PropKeys() {
		b.WriteString(" ")
		b.WriteString(propStyle.Render(fmt.Sprintf("%s=%v", k, n.Props[k])))
	}
	b.WriteString("\n")

	childPrefix := prefix
	if !top {
		if branch == "└── " {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, c := range n.Children {
		next := "├── "
		if i == len(n.Children)-1 {
			next = "└── "
		}
		writeNode(b, c, childPrefix, next, false)
	}
}
