package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waterflow/pkg/errors"
	"github.com/matzehuels/waterflow/pkg/pipeline"
	"github.com/matzehuels/waterflow/pkg/waterflow"
)

// browseCommand creates the browse command for scrolling a session interactively.
func (c *CLI) browseCommand() *cobra.Command {
	var ov layoutOverrides

	cmd := &cobra.Command{
		Use:   "browse [config.toml]",
		Short: "Scroll a layout interactively in the terminal",
		Long: `Scroll a layout interactively in the terminal.

The browse command drives a live engine: every key press scrolls, jumps or
edits the item list, and the grid shows the items that hold an element right
now. Idle frames spend the configured predictive budget laying out ahead.

Keys:
  j/k, ↓/↑     scroll a line
  space/b      scroll a page
  g/G          jump to the first/last item
  0-9 ⏎        jump to an index
  +/-          append or remove items
  r            clear and recompute the layout
  q            quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := loadConfig(input)
			if err != nil {
				return err
			}
			applyOverrides(&cfg, ov, cmd.Flags().Changed)

			session, err := pipeline.NewSession(cfg, c.Logger)
			if err != nil {
				return err
			}
			// Engine debug lines would tear the alternate screen.
			c.SetLogLevel(LogInfo)

			p := tea.NewProgram(newBrowseModel(session), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				if ctxErr := cmd.Context().Err(); ctxErr != nil {
					return ctxErr
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ov.columns, "columns", "", "columns template")
	cmd.Flags().StringVar(&ov.direction, "direction", "", "layout direction: column, row, column-reverse, row-reverse")
	cmd.Flags().IntVar(&ov.count, "count", 0, "number of items")
	cmd.Flags().Uint64Var(&ov.seed, "seed", 0, "seed for item sizes")
	cmd.Flags().Float64Var(&ov.width, "width", 0, "viewport width")
	cmd.Flags().Float64Var(&ov.height, "height", 0, "viewport height")

	return cmd
}

// =============================================================================
// BrowseModel - Interactive session
// =============================================================================

const (
	browseFrame    = 50 * time.Millisecond
	browseChrome   = 3 // header, status and help lines
	browseMinRows  = 8
	browseMinCols  = 20
	browseLineFrac = 10 // a line scroll is 1/10 of the viewport
	browseEdit     = 20 // items added or removed by +/-
)

var (
	browseErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	browseFooterStyle = lipgloss.NewStyle().Foreground(colorBlue)
	browseItemStyles  = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("247")),
	}
)

type predictTickMsg time.Time

func predictTick() tea.Cmd {
	return tea.Tick(browseFrame, func(t time.Time) tea.Msg { return predictTickMsg(t) })
}

// BrowseModel is the bubbletea model of the browse command.
type BrowseModel struct {
	session *pipeline.Session
	cols    int
	rows    int
	jump    string
	status  string
	err     error
	steps   int // predictive steps since the last key
}

func newBrowseModel(s *pipeline.Session) BrowseModel {
	s.Engine.Layout()
	return BrowseModel{session: s, cols: 80, rows: 24 - browseChrome}
}

func (m BrowseModel) Init() tea.Cmd {
	return predictTick()
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case predictTickMsg:
		m.steps += m.session.Predict()
		return m, predictTick()
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, browseMinCols)
		m.rows = max(msg.Height-browseChrome, browseMinRows)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m BrowseModel) handleKey(key string) (tea.Model, tea.Cmd) {
	e := m.session.Engine
	viewMain := e.GetScrollDirection().Main(e.Viewport())
	m.err, m.status, m.steps = nil, "", 0

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.jump == "" {
			return m, tea.Quit
		}
		m.jump = ""
	case "j", "down", "right":
		m.session.Step(viewMain / browseLineFrac)
	case "k", "up", "left":
		m.session.Step(-viewMain / browseLineFrac)
	case " ", "pgdown", "f":
		m.session.Step(viewMain)
	case "b", "pgup":
		m.session.Step(-viewMain)
	case "g", "home":
		m.scrollTo(0)
	case "G", "end":
		m.scrollTo(e.TotalCount() - 1)
	case "backspace":
		if m.jump != "" {
			m.jump = m.jump[:len(m.jump)-1]
		}
	case "enter":
		if m.jump != "" {
			idx, _ := strconv.Atoi(m.jump)
			m.jump = ""
			m.scrollTo(idx)
		}
	case "r":
		e.ClearLayout(0, true)
		e.Layout()
		m.status = "layout cleared"
	case "+", "=":
		n := e.TotalCount()
		m.session.Source.SetCount(n + browseEdit)
		e.OnDataSourceUpdated(n)
		e.Layout()
		m.status = fmt.Sprintf("appended %d items", browseEdit)
	case "-", "_":
		n := max(e.TotalCount()-browseEdit, 0)
		m.session.Source.SetCount(n)
		e.OnDataSourceUpdated(n)
		e.Layout()
		m.status = fmt.Sprintf("count is now %d", n)
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' && len(m.jump) < 9 {
			m.jump += key
		}
	}
	return m, nil
}

func (m *BrowseModel) scrollTo(index int) {
	e := m.session.Engine
	if err := e.ScrollToIndex(index, waterflow.SourceImmediate); err != nil {
		m.err = err
		return
	}
	e.Layout()
	m.status = fmt.Sprintf("jumped to %d", index)
}

func (m BrowseModel) View() string {
	e := m.session.Engine
	var b strings.Builder

	first, last := e.VisibleRange()
	visible := "none"
	if first >= 0 {
		visible = fmt.Sprintf("%d-%d", first, last)
	}
	b.WriteString(StyleTitle.Render("waterflow"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %d columns · offset %.0f/%.0f · visible %s · live %d/%d",
		e.Config().Direction, len(e.Columns()), e.Offset(), e.ContentExtent(), visible,
		len(e.Materialized()), e.TotalCount())))
	b.WriteString("\n")

	b.WriteString(m.renderGrid())

	switch {
	case m.err != nil:
		b.WriteString(browseErrorStyle.Render(errors.UserMessage(m.err)))
	case m.jump != "":
		b.WriteString(StyleHighlight.Render("jump to " + m.jump + "_"))
	case m.status != "":
		b.WriteString(StyleSuccess.Render(m.status))
	default:
		tail := ""
		if e.ReachedTail() {
			tail = " · tail reached"
		}
		b.WriteString(StyleDim.Render(fmt.Sprintf("next %d · predicted %d%s", e.NextIndex(), m.steps, tail)))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("j/k scroll  space/b page  g/G ends  0-9⏎ jump  +/- items  r reset  q quit"))
	return b.String()
}

// =============================================================================
// Grid
// =============================================================================

// cell holds the index drawn at a grid position; -1 is empty and -2 the
// footer.
type cell struct {
	index int
	label rune
}

const (
	cellEmpty  = -1
	cellFooter = -2
)

// renderGrid samples the viewport onto an m.cols x m.rows character grid.
func (m BrowseModel) renderGrid() string {
	grid := m.sampleGrid()

	var b strings.Builder
	for _, row := range grid {
		for x := 0; x < len(row); {
			run := x
			for run < len(row) && row[run].index == row[x].index {
				run++
			}
			b.WriteString(renderRun(row[x:run]))
			x = run
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m BrowseModel) sampleGrid() [][]cell {
	e := m.session.Engine
	vp := e.Viewport()
	sx, sy := vp.Width/float64(m.cols), vp.Height/float64(m.rows)

	grid := make([][]cell, m.rows)
	for y := range grid {
		grid[y] = make([]cell, m.cols)
		for x := range grid[y] {
			grid[y][x] = cell{index: cellEmpty}
		}
	}
	if sx <= 0 || sy <= 0 {
		return grid
	}

	paint := func(index int, r waterflow.Rect) {
		x0, x1 := cellSpan(r.X, r.Width, sx, m.cols)
		y0, y1 := cellSpan(r.Y, r.Height, sy, m.rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = cell{index: index}
			}
		}
		// Label the first cell row with the index when it fits.
		if index >= 0 && y0 < y1 {
			label := []rune(strconv.Itoa(index))
			if len(label) <= x1-x0 {
				for i, ch := range label {
					grid[y0][x0+i].label = ch
				}
			}
		}
	}

	for _, index := range e.Materialized() {
		if r, ok := e.Rect(index); ok {
			paint(index, r)
		}
	}
	if r, ok := e.FooterRect(); ok {
		paint(cellFooter, r)
	}
	return grid
}

// cellSpan maps [pos, pos+size) onto cell indices, clamped to [0, n). A
// partly covered trailing cell is left empty so that gaps stay visible.
func cellSpan(pos, size, scale float64, n int) (int, int) {
	lo := int(math.Round(pos / scale))
	hi := int(math.Floor((pos + size) / scale))
	if hi <= lo {
		hi = lo + 1
	}
	return min(max(lo, 0), n), min(max(hi, 0), n)
}

func renderRun(run []cell) string {
	var s strings.Builder
	for _, c := range run {
		switch {
		case c.label != 0:
			s.WriteRune(c.label)
		case c.index == cellEmpty:
			s.WriteRune(' ')
		case c.index == cellFooter:
			s.WriteRune('░')
		default:
			s.WriteRune('█')
		}
	}
	switch idx := run[0].index; idx {
	case cellEmpty:
		return s.String()
	case cellFooter:
		return browseFooterStyle.Render(s.String())
	default:
		return browseItemStyles[idx%len(browseItemStyles)].Render(s.String())
	}
}
