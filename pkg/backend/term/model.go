package term

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/rosetta/pkg/builder"
	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/errors"
)

// Options configures a terminal session.
type Options struct {
	// Interval is the tick interval. Zero means 100ms.
	Interval time.Duration
	// Width is the initial render width. Resize events override it.
	Width int
	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
}

type tickMsg time.Time

// Model is the bubbletea model for one element tree.
type Model struct {
	root     element.Element
	fw       *builder.Framework[*Node]
	node     *Node
	focus    int
	interval time.Duration
	width    int
}

// NewModel builds root with the terminal backend.
func NewModel(root element.Element, opts Options) (*Model, error) {
	fw := New()
	node, err := fw.Build(root)
	if err != nil {
		return nil, fmt.Errorf("term: build: %w", err)
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Model{root: root, fw: fw, node: node, interval: interval, width: opts.Width}, nil
}

// Root returns the root node.
func (m *Model) Root() *Node { return m.node }

// Focused returns the node with keyboard focus, or nil.
func (m *Model) Focused() *Node {
	nodes := m.focusable()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[min(m.focus, len(nodes)-1)]
}

func (m *Model) focusable() []*Node {
	var out []*Node
	for _, l := range lines(m.node) {
		if l.node.focusable() {
			out = append(out, l.node)
		}
	}
	return out
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		element.Tick(m.root)
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(k string) tea.Cmd {
	switch k {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k", "shift+tab":
		if m.focus > 0 {
			m.focus--
		}
		return nil
	case "down", "j", "tab":
		if m.focus < len(m.focusable())-1 {
			m.focus++
		}
		return nil
	}
	if n := m.Focused(); n != nil {
		press(n, k)
	}
	return nil
}

// press forwards k to n. A panic in a setter or change hook is reported and
// the session keeps running.
func press(n *Node, k string) {
	defer errors.Recover("term.Node.key")
	n.key(k)
}

func (m *Model) View() string {
	help := statusStyle.Render("↑/↓ move · space/enter toggle · +/- adjust · q quit")
	return Render(m.node, m.Focused(), m.width) + "\n" + help + "\n"
}

// Run builds root and runs it until the user quits or ctx is done. The tree
// is destroyed on return.
func Run(ctx context.Context, root element.Element, opts Options) error {
	m, err := NewModel(root, opts)
	if err != nil {
		return err
	}
	defer root.Destroy()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	_, err = tea.NewProgram(m, progOpts...).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
