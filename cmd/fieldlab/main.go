// Command fieldlab edits a toolshed text field in the terminal. Each
// terminal cell stands for one glyph cell, so wrapping, truncation, caret
// placement and pointer-to-index mapping behave exactly as they do on
// screen. Esc quits; Ctrl+A, Ctrl+C, Ctrl+X and Ctrl+V use the system
// clipboard.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/toolshed"
)

// A terminal column is two pixels wide so that a click on a cell's left
// edge rounds down to that cell.
const (
	cellW = 2
	cellH = 1

	originX = 2
	originY = 2
)

var (
	frameStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
	highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("244")).Foreground(lipgloss.Color("0"))
	caretStyle     = lipgloss.NewStyle().Reverse(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	eventStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

type model struct {
	sm      *toolshed.SceneManager
	field   *toolshed.TextField
	writer  *toolshed.Writer
	surface *toolshed.ImageSurface
	events  *eventLog
	cols    int
	rows    int
	down    bool
}

// eventLog keeps the most recent field events for display.
type eventLog struct {
	lines []string
}

func (l *eventLog) EmitFieldEvent(ev toolshed.FieldEvent) {
	l.lines = append(l.lines, fmt.Sprintf("%s %q", ev.Type, ev.Text))
	if len(l.lines) > 5 {
		l.lines = l.lines[len(l.lines)-5:]
	}
}

func newModel(cols, rows int, text string) (*model, error) {
	sheet, err := toolshed.NewGlyphSheet(
		image.NewNRGBA(image.Rect(0, 0, 26*cellW, 2*cellH)),
		cellW, cellH, toolshed.DefaultGlyphLayout(cellW, cellH),
	)
	if err != nil {
		return nil, err
	}
	w := toolshed.NewWriter(sheet)

	field := toolshed.NewTextField("lab", image.Rect(0, 0, cols*cellW, rows*cellH))
	field.Clipboard = toolshed.SystemClipboard{}
	field.Blink.Period = 0
	field.SetText(toolshed.Sanitize(text, w))

	ui := toolshed.NewUI(w)
	ui.Insert(field)

	events := &eventLog{}
	sm := toolshed.NewSceneManager()
	sm.Insert("lab", ui)
	sm.SetEventSink(events)
	sm.SetFocus("lab")

	m := &model{
		sm:      sm,
		field:   field,
		writer:  w,
		surface: toolshed.NewImageSurface(cols*cellW+1, rows*cellH+1),
		events:  events,
		cols:    cols,
		rows:    rows,
	}
	m.redraw()
	return m, nil
}

// redraw refreshes the field's cached grid after every input.
func (m *model) redraw() {
	m.sm.Draw(m.surface)
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		for _, ev := range keyEvents(msg) {
			m.sm.HandleKey(ev)
		}
	case tea.MouseMsg:
		x := float64((msg.X - originX) * cellW)
		y := float64((msg.Y - originY) * cellH)
		switch msg.Type {
		case tea.MouseLeft:
			m.down = true
		case tea.MouseRelease:
			m.down = false
		case tea.MouseMotion:
		default:
			return m, nil
		}
		m.sm.HandlePointer(x, y, m.down)
	}
	m.redraw()
	return m, nil
}

// keyEvents translates a terminal key into field keystrokes.
func keyEvents(msg tea.KeyMsg) []toolshed.KeyEvent {
	switch msg.Type {
	case tea.KeyBackspace:
		return []toolshed.KeyEvent{{Key: toolshed.KeyBackspace}}
	case tea.KeyLeft:
		return []toolshed.KeyEvent{{Key: toolshed.KeyLeft}}
	case tea.KeyRight:
		return []toolshed.KeyEvent{{Key: toolshed.KeyRight}}
	case tea.KeyEnter:
		return []toolshed.KeyEvent{{Key: toolshed.KeyEnter}}
	case tea.KeySpace:
		return []toolshed.KeyEvent{toolshed.CharEvent(' ')}
	case tea.KeyCtrlA:
		return []toolshed.KeyEvent{{Char: 'a', Mods: toolshed.ModCtrl}}
	case tea.KeyCtrlC:
		return []toolshed.KeyEvent{{Char: 'c', Mods: toolshed.ModCtrl}}
	case tea.KeyCtrlX:
		return []toolshed.KeyEvent{{Char: 'x', Mods: toolshed.ModCtrl}}
	case tea.KeyCtrlV:
		return []toolshed.KeyEvent{{Char: 'v', Mods: toolshed.ModCtrl}}
	case tea.KeyRunes:
		out := make([]toolshed.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, toolshed.CharEvent(r))
		}
		return out
	}
	return nil
}

func (m *model) View() string {
	f := m.field
	d := toolshed.NewDialogue(f.Text(), f.Bounds)
	if !f.HasSelection() {
		d.Caret = f.Cursor()
	}
	d.HighlightStart, d.HighlightEnd = f.Selection()

	l, err := m.writer.Layout(d)
	if err != nil {
		return err.Error()
	}

	cells := make([][]string, m.rows)
	for i := range cells {
		cells[i] = make([]string, m.cols+1)
		for j := range cells[i] {
			cells[i][j] = " "
		}
	}
	lo, hi := d.Highlight()
	text := []rune(f.Text())
	for _, g := range l.Glyphs {
		s := string(text[g.Index])
		if g.Index >= lo && g.Index < hi {
			s = highlightStyle.Render(s)
		}
		cells[g.Row][g.Col] = s
	}
	if l.HasCaret {
		row, col := l.Caret.Y/cellH, (l.Caret.X+1)/cellW
		if row < m.rows && col <= m.cols {
			cells[row][col] = caretStyle.Render(cells[row][col])
		}
	}

	var b strings.Builder
	for i, row := range cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, ""))
	}

	status := fmt.Sprintf("len %d  cursor %d  selection %d..%d", f.Len(), f.Cursor(), lo, hi)
	if l.Truncated {
		status += "  truncated"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		lipgloss.NewStyle().MarginLeft(originX-1).Render(frameStyle.Render(b.String())),
		statusStyle.Render(status),
		statusStyle.Render("grid:"),
		statusStyle.Render(f.Grid().String()),
		eventStyle.Render(strings.Join(m.events.lines, "\n")),
	)
}

func main() {
	cols := flag.Int("cols", 24, "field width in cells")
	rows := flag.Int("rows", 4, "field height in cells")
	text := flag.String("text", "The quick brown fox jumps over the lazy dog.", "initial text")
	flag.Parse()

	m, err := newModel(*cols, *rows, *text)
	if err != nil {
		log.Fatal(err)
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
