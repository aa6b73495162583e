package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle    = lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	windowStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

const sliderWidth = 16

func formatBool(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func formatString(v string) string { return strconv.Quote(v) }

func formatSlider(v, lo, hi float64, text string) string {
	pos := 0
	if hi > lo {
		pos = int((v - lo) / (hi - lo) * float64(sliderWidth-1))
	}
	pos = max(0, min(pos, sliderWidth-1))
	return strings.Repeat("━", pos) + "●" + strings.Repeat("─", sliderWidth-1-pos) + " " + text
}

// line is one rendered row of the tree.
type line struct {
	node  *Node
	depth int
}

// lines flattens the shown part of the tree. Hidden nodes and the contents
// of closed folds and windows are skipped.
func lines(root *Node) []line {
	var out []line
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil || !n.visible {
			return
		}
		out = append(out, line{node: n, depth: depth})
		if n.collapsible && !n.open {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return out
}

func renderLine(l line, focused bool) string {
	n := l.node
	text := n.label
	switch n.kind {
	case "fold":
		marker := "▸"
		if n.open {
			marker = "▾"
		}
		text = marker + " " + titleStyle.Render(n.label)
	case "window":
		text = titleStyle.Render("□ " + n.label)
	case "launcher":
		text = "⧉ " + n.label
	case "button":
		text = "[ " + n.label + " ]"
	case "list":
		text = labelStyle.Render(n.label) + statusStyle.Render(" (a: append)")
	case "item":
		text = statusStyle.Render(n.label + " (x: remove)")
	case "label":
		text = labelStyle.Render(n.label)
	default:
		if n.value != "" {
			text = fmt.Sprintf("%s  %s", labelStyle.Render(n.label), valueStyle.Render(n.value))
		}
	}
	if !n.interactable && n.key != nil {
		text = disabledStyle.Render(n.label + "  " + n.value)
	}
	if focused {
		text = focusStyle.Render(text)
	}
	return strings.Repeat("  ", l.depth) + text
}

// Render draws the tree with focus on the given node.
func Render(root *Node, focus *Node, width int) string {
	rows := make([]string, 0, 16)
	for _, l := range lines(root) {
		rows = append(rows, renderLine(l, l.node == focus))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if width > 4 {
		return windowStyle.Width(width - 2).Render(body)
	}
	return windowStyle.Render(body)
}
