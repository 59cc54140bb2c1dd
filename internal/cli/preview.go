package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/graph"
	"github.com/matzehuels/gravitymap/pkg/pipeline"
)

// Preview glyphs and sizing.
const (
	glyphCenter = "◉"
	glyphNode   = "●"

	previewMinIterations = 25
	previewLabelWidth    = 10
	previewDefaultWidth  = 72
	previewDefaultHeight = 24
	previewChromeLines   = 4
)

var (
	previewCenterStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	previewNodeStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	previewLabelStyle  = lipgloss.NewStyle().Foreground(colorGray)
	previewFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// previewCommand creates the preview command for an interactive terminal view.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [graph.json|graph.yaml]",
		Short: "Preview a layout interactively in the terminal",
		Long: `Compute a layout and draw it as a scatter plot in the terminal.

Keys:
  +  double the iteration count and recompute
  -  halve the iteration count and recompute
  q  quit`,
		Args: cobra.ExactArgs(1),
	}
	flags := addLayoutFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		g, err := graph.ReadGraphFile(args[0])
		if err != nil {
			return fmt.Errorf("load graph %s: %w", args[0], err)
		}
		runner, err := c.newRunner(cmd.Context(), noCache)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		opts := c.layoutOptions(flags)
		// Keep runner logs from drawing over the TUI.
		opts.Logger = nil
		runner.Logger = newLogger(io.Discard, LogInfo)

		m := newPreviewModel(cmd.Context(), runner, g, opts)
		final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		if ctxErr := cmd.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return err
		}
		if pm, ok := final.(previewModel); ok && pm.err != nil {
			return pm.err
		}
		return nil
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// previewModel - bubbletea model
// =============================================================================

// layoutMsg carries a finished layout computation.
type layoutMsg struct {
	layout graph.Layout
	cached bool
	err    error
}

type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	graph  graph.Graph
	opts   pipeline.Options

	layout    graph.Layout
	cached    bool
	computing bool
	err       error

	width, height int
}

func newPreviewModel(ctx context.Context, runner *pipeline.Runner, g graph.Graph, opts pipeline.Options) previewModel {
	return previewModel{
		ctx:       ctx,
		runner:    runner,
		graph:     g,
		opts:      opts,
		computing: true,
		width:     previewDefaultWidth,
		height:    previewDefaultHeight,
	}
}

func (m previewModel) compute() tea.Cmd {
	runner, ctx, g, opts := m.runner, m.ctx, m.graph, m.opts
	return func() tea.Msg {
		l, cached, err := runner.ComputeLayout(ctx, g, opts)
		return layoutMsg{layout: l, cached: cached, err: err}
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.compute()
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			return m.setIterations(moreIterations(m.opts.Iterations))
		case "-", "_":
			return m.setIterations(fewerIterations(m.opts.Iterations))
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case layoutMsg:
		m.computing = false
		if msg.err != nil {
			// The graph is fixed, so another iteration count cannot fix it.
			m.err = msg.err
			return m, tea.Quit
		}
		m.layout, m.cached = msg.layout, msg.cached
	}
	return m, nil
}

func (m previewModel) setIterations(n int) (tea.Model, tea.Cmd) {
	if n == m.opts.Iterations || m.computing {
		return m, nil
	}
	m.opts.Iterations = n
	m.computing = true
	return m, m.compute()
}

// moreIterations doubles n, starting from previewMinIterations.
func moreIterations(n int) int {
	if n < previewMinIterations {
		return previewMinIterations
	}
	return min(n*2, pipeline.MaxIterations)
}

// fewerIterations halves n, dropping to zero (the seed placement) below
// previewMinIterations.
func fewerIterations(n int) int {
	if n/2 < previewMinIterations {
		return 0
	}
	return n / 2
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gravity map"))
	b.WriteString(StyleDim.Render("  center " + m.graph.Center))
	b.WriteString("\n")

	w := max(m.width-2, 10)
	h := max(m.height-previewChromeLines-2, 5)
	b.WriteString(previewFrameStyle.Render(strings.Join(plotLayout(m.layout, w, h), "\n")))
	b.WriteString("\n")

	status := fmt.Sprintf("iterations %d · %d nodes", m.opts.Iterations, len(m.layout.Positions))
	switch {
	case m.computing:
		status += " · computing…"
	case m.err != nil:
		status += " · " + StyleWarning.Render(errors.UserMessage(m.err))
	case m.cached:
		status += " · " + styleCached.Render(iconCached)
	default:
		status += " · " + styleComputed.Render(iconFresh)
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("+/- iterations  q quit"))
	return b.String()
}

// =============================================================================
// Scatter plot
// =============================================================================

// plotLayout draws positions onto a w×h character grid. The plot is scaled
// so the farthest node sits at the edge, with the center at the middle.
// Each node is followed by a truncated label when there is room.
func plotLayout(l graph.Layout, w, h int) []string {
	cells := make([][]string, h)
	for i := range cells {
		cells[i] = make([]string, w)
		for j := range cells[i] {
			cells[i][j] = " "
		}
	}

	extent := 0.0
	for _, p := range l.Positions {
		extent = math.Max(extent, math.Max(math.Abs(p.X()), math.Abs(p.Y())))
	}
	if extent == 0 {
		extent = 1
	}

	ids := make([]string, 0, len(l.Positions))
	for id := range l.Positions {
		if id != l.Center {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if _, ok := l.Positions[l.Center]; ok {
		// Center last so nothing overwrites it.
		ids = append(ids, l.Center)
	}

	cx, cy := float64(w-1)/2, float64(h-1)/2
	for _, id := range ids {
		p := l.Positions[id]
		col := int(math.Round(cx + p.X()/extent*cx))
		row := int(math.Round(cy - p.Y()/extent*cy))
		if row < 0 || row >= h || col < 0 || col >= w {
			continue
		}

		if id == l.Center {
			cells[row][col] = previewCenterStyle.Render(glyphCenter)
		} else {
			cells[row][col] = previewNodeStyle.Render(glyphNode)
		}

		label := []rune(id)
		if len(label) > previewLabelWidth {
			label = label[:previewLabelWidth]
		}
		for i, r := range label {
			c := col + 2 + i
			if c >= w || cells[row][c] != " " {
				break
			}
			cells[row][c] = previewLabelStyle.Render(string(r))
		}
	}

	lines := make([]string, h)
	for i, row := range cells {
		lines[i] = strings.Join(row, "")
	}
	return lines
}
