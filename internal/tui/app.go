// Package tui is the terminal front end: a Bubble Tea program that drives a
// controller from per-frame ticks, mouse presses and key bindings.
package tui

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/controller"
	"github.com/san-kum/lifesim/internal/coords"
	"github.com/san-kum/lifesim/internal/engine"
	"github.com/san-kum/lifesim/internal/geometry"
	"github.com/san-kum/lifesim/internal/rate"
	"github.com/san-kum/lifesim/internal/render"
)

const (
	gridLeft    = 2
	gridTop     = 2
	footerRows  = 14
	speedStep   = 5.0
	densityStep = 5.0
)

// tickMsg is one frame callback. It carries the epoch it was scheduled for so
// that a pause cancels it.
type tickMsg struct {
	at    time.Time
	epoch uint64
}

func tick(interval time.Duration, epoch uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg{at: t, epoch: epoch} })
}

var formLabels = [3]string{"width", "height", "cell"}

type geometryForm struct {
	open   bool
	field  int
	values [3]string
}

type model struct {
	ctl      *controller.Controller
	text     *render.Text
	st       styles
	interval time.Duration
	patterns []string

	form   geometryForm
	notice string

	width  int
	height int
}

func newModel(cfg *config.Config, factory engine.Factory, logger *log.Logger) model {
	st := GetTheme(cfg.Theme).palette()
	text := render.NewText(st.alive, st.dead)

	opts := cfg.ControllerOptions()
	opts.Logger = logger
	ctl := controller.New(opts, factory, text)

	var patterns []string
	if pl, ok := ctl.Engine().(engine.PatternLister); ok {
		patterns = pl.Patterns()
	}

	m := model{
		ctl:      ctl,
		text:     text,
		st:       st,
		interval: time.Second / time.Duration(max(cfg.TPS, 1)),
		patterns: patterns,
		width:    80,
		height:   24,
	}
	m.layout()
	return m
}

func (m *model) layout() {
	m.text.SetViewport(gridLeft, gridTop, m.width-2*gridLeft, m.height-gridTop-footerRows)
	m.text.Render(m.ctl.Engine())
}

func (m model) Init() tea.Cmd {
	if m.ctl.Running() {
		return tick(m.interval, m.ctl.Epoch())
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tickMsg:
		if r := m.ctl.Frame(msg.at, msg.epoch); r.Dropped {
			return m, nil
		}
		return m, tick(m.interval, msg.epoch)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.form.open {
			m.click(msg.X, msg.Y)
		}
		return m, nil
	case tea.KeyMsg:
		if m.form.open {
			return m.formKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// click feeds a press at terminal cell (x, y) to the controller. Presses
// outside the grid are ignored.
func (m *model) click(x, y int) bool {
	g := m.ctl.Snapshot().Geometry
	rect := m.text.Rect(g)
	p := coords.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	if !rect.Contains(p) {
		return false
	}
	cell := m.ctl.Click(p, rect, coords.BackingFor(g))
	m.notice = fmt.Sprintf("cell %d,%d", cell.Row, cell.Col)
	return true
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	s := m.ctl.Snapshot()
	m.notice = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.ctl.TogglePlay()
		if m.ctl.Running() {
			return m, tick(m.interval, m.ctl.Epoch())
		}
	case "n":
		m.ctl.Step()
	case "+", "=":
		m.ctl.SetSpeed(s.SpeedControl + speedStep)
	case "-", "_":
		m.ctl.SetSpeed(s.SpeedControl - speedStep)
	case "0":
		m.ctl.SetSpeed(rate.ControlNormal)
	case "r":
		m.ctl.Randomize(s.Density)
	case "[":
		m.ctl.SetDensity(s.Density - densityStep)
	case "]":
		m.ctl.SetDensity(s.Density + densityStep)
	case "c":
		m.ctl.ClearAll()
	case "i":
		m.ctl.SetInsertion(m.nextInsertion(s.Insertion))
	case "h":
		ins := s.Insertion
		ins.HFlip = !ins.HFlip
		m.ctl.SetInsertion(ins)
	case "v":
		ins := s.Insertion
		ins.VFlip = !ins.VFlip
		m.ctl.SetInsertion(ins)
	case "x":
		ins := s.Insertion
		ins.Invert = !ins.Invert
		m.ctl.SetInsertion(ins)
	case "g":
		m.form = geometryForm{open: true, values: [3]string{
			strconv.Itoa(s.Geometry.Width),
			strconv.Itoa(s.Geometry.Height),
			strconv.Itoa(s.Geometry.CellSize),
		}}
	}
	return m, nil
}

// nextInsertion cycles toggle, then each seed pattern in turn, then back to
// toggle. Transform flags are kept.
func (m model) nextInsertion(cur controller.Insertion) controller.Insertion {
	if len(m.patterns) == 0 {
		cur.Mode = controller.Toggle
		return cur
	}
	if cur.Mode == controller.Toggle {
		cur.Mode = controller.Seed
		cur.Pattern = m.patterns[0]
		return cur
	}
	for i, name := range m.patterns {
		if name == cur.Pattern && i+1 < len(m.patterns) {
			cur.Pattern = m.patterns[i+1]
			return cur
		}
	}
	cur.Mode = controller.Toggle
	return cur
}

func (m model) formKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.form.open = false
	case "tab", "down":
		m.form.field = (m.form.field + 1) % len(m.form.values)
	case "shift+tab", "up":
		m.form.field = (m.form.field + len(m.form.values) - 1) % len(m.form.values)
	case "backspace":
		if v := m.form.values[m.form.field]; len(v) > 0 {
			m.form.values[m.form.field] = v[:len(v)-1]
		}
	case "enter":
		m.form.open = false
		v := m.form.values
		if g, ok := m.ctl.Resize(geometry.ParseRequest(v[0], v[1], v[2])); ok {
			m.notice = "resized to " + g.String()
		} else {
			m.notice = fmt.Sprintf("rejected %sx%s@%s: surface exceeds %d px", v[0], v[1], v[2], geometry.AreaBudget)
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				m.form.values[m.form.field] += string(c)
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	s := m.ctl.Snapshot()
	var b strings.Builder

	status := m.st.good.Render("● running")
	if s.Run == controller.Paused {
		status = m.st.warn.Render("○ paused")
	}
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n\n",
		m.st.primary.Render("l i f e s i m"), status, m.st.muted.Render(s.Geometry.String())))

	for _, line := range strings.Split(m.text.View(), "\n") {
		b.WriteString(strings.Repeat(" ", gridLeft) + line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  %s %s  %s %s  %s %s  %s %s\n",
		m.st.muted.Render("speed"), m.st.text.Render(fmt.Sprintf("%.0f (%s)", s.SpeedControl, s.Speed)),
		m.st.muted.Render("gen"), m.st.text.Render(strconv.FormatUint(s.Generation, 10)),
		m.st.muted.Render("density"), m.st.text.Render(fmt.Sprintf("%.0f%%", s.Density)),
		m.st.muted.Render("insert"), m.st.primary.Render(insertionLabel(s.Insertion))))

	t := s.Telemetry
	b.WriteString(fmt.Sprintf("  %s %s  %s %.1f  %s %.1f  %s %.1f\n",
		m.st.muted.Render("fps"), m.st.text.Render(fmt.Sprintf("%.1f", t.Latest)),
		m.st.muted.Render("avg"), t.Mean,
		m.st.muted.Render("min"), t.Min,
		m.st.muted.Render("max"), t.Max))

	if samples := m.ctl.Samples(); len(samples) > 1 {
		graph := asciigraph.Plot(samples,
			asciigraph.Height(3),
			asciigraph.Width(max(min(60, m.width-14), 10)),
			asciigraph.Precision(0))
		for _, line := range strings.Split(graph, "\n") {
			b.WriteString("  " + m.st.primary.Render(line) + "\n")
		}
	}

	if m.form.open {
		b.WriteString("\n  ")
		for i, label := range formLabels {
			val := m.form.values[i]
			if i == m.form.field {
				b.WriteString(m.st.primary.Render("▸ "+label+" ") + m.st.text.Render(val+"_") + "  ")
			} else {
				b.WriteString(m.st.muted.Render("  "+label+" "+val) + "  ")
			}
		}
		b.WriteString("\n")
	}
	if m.notice != "" {
		style := m.st.muted
		if strings.HasPrefix(m.notice, "rejected") {
			style = m.st.bad
		}
		b.WriteString("  " + style.Render(m.notice) + "\n")
	}

	help := "space play  n step  ±/0 speed  r random  [] density  c clear  i insert  h/v/x flip  g size  q quit"
	if m.form.open {
		help = "tab next field  enter apply  esc cancel"
	}
	b.WriteString("\n" + m.st.dimmer.Render("  "+help) + "\n")
	return b.String()
}

func insertionLabel(ins controller.Insertion) string {
	if ins.Mode == controller.Toggle {
		return "toggle"
	}
	flags := []byte("---")
	if ins.HFlip {
		flags[0] = 'h'
	}
	if ins.VFlip {
		flags[1] = 'v'
	}
	if ins.Invert {
		flags[2] = 'x'
	}
	return fmt.Sprintf("seed %s [%s]", ins.Pattern, flags)
}

// Run starts the terminal program. It fails with a *render.BackendError
// before touching the screen when stdout is not a terminal.
func Run(cfg *config.Config, factory engine.Factory, logger *log.Logger) error {
	if err := render.CheckTerminal(os.Stdout); err != nil {
		return err
	}
	p := tea.NewProgram(newModel(cfg, factory, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
