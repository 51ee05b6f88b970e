package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/traitcodec/pkg/codec"
)

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

var assetHeaders = []string{"#", "Asset", "Layer", "Item", "Prims", "Geometry", "Fills"}

// assetRow summarizes one asset of a document.
type assetRow struct {
	Pos        int
	Asset      string
	Layer      int
	Item       string
	Primitives int
	Geometry   int // distinct geometry references, -1 when the variant has none
	Fills      int // distinct fill references
}

func (r assetRow) cells() []string {
	geometry := "—"
	if r.Geometry >= 0 {
		geometry = strconv.Itoa(r.Geometry)
	}
	return []string{
		strconv.Itoa(r.Pos),
		r.Asset,
		strconv.Itoa(r.Layer),
		r.Item,
		strconv.Itoa(r.Primitives),
		geometry,
		strconv.Itoa(r.Fills),
	}
}

// summarize returns one row per asset in document order.
func summarize(doc codec.Document) []assetRow {
	var rows []assetRow
	switch d := doc.(type) {
	case *codec.VectorDocument:
		for i, t := range d.Trait {
			geo, fill := make([]int, len(t.Codes)), make([]int, len(t.Codes))
			for j, c := range t.Codes {
				geo[j], fill[j] = c.D, c.Fill
			}
			rows = append(rows, assetRow{i, t.Asset, t.Layer, strconv.Itoa(t.Item), len(t.Codes), countDistinct(geo), countDistinct(fill)})
		}
	case *codec.RectDocument:
		for i, t := range d.Trait {
			fill := make([]int, len(t.Rects))
			for j, r := range t.Rects {
				fill[j] = r.Fill
			}
			rows = append(rows, assetRow{i, t.Asset, t.Layer, t.Item, len(t.Rects), -1, countDistinct(fill)})
		}
	case *codec.RasterDocument:
		for i, t := range d.Trait {
			rows = append(rows, assetRow{i, t.Asset, t.Layer, strconv.Itoa(t.Item), len(t.Indexes), -1, len(t.Colors)})
		}
	}
	return rows
}

func countDistinct(v []int) int {
	s := slices.Clone(v)
	slices.Sort(s)
	return len(slices.Compact(s))
}

// documentHeader is the one-line description above the asset table.
func documentHeader(doc codec.Document) string {
	var parts []string
	parts = append(parts, string(doc.Kind()))
	switch d := doc.(type) {
	case *codec.VectorDocument:
		parts = append(parts, fmt.Sprintf("%d geometry", len(d.Geometry)), fmt.Sprintf("%d fills", len(d.Fill)))
	case *codec.RectDocument:
		n := 0
		for _, p := range d.Fill {
			n += len(p)
		}
		parts = append(parts, fmt.Sprintf("%d fills in %d palettes", n, len(d.Fill)))
	case *codec.RasterDocument:
		parts = append(parts, fmt.Sprintf("width %d", d.Width), fmt.Sprintf("%d fills", len(d.Fill)))
	}
	parts = append(parts, fmt.Sprintf("%d assets", len(doc.Assets())), fmt.Sprintf("%d layers", len(doc.Layers())))
	return strings.Join(parts, " · ")
}

// renderTable renders rows[from:to] with the row at cursor highlighted.
// A negative cursor disables highlighting.
func renderTable(rows []assetRow, from, to, cursor int) string {
	data := make([][]string, 0, to-from)
	for _, r := range rows[from:to] {
		data = append(data, r.cells())
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(assetHeaders...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Align(lipgloss.Right)
			}
			if from+row == cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if rows[from+row].Primitives == 0 {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		}).
		Render()
}

// =============================================================================
// InspectModel - Interactive document browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a document's assets.
type InspectModel struct {
	Title  string
	Header string
	Rows   []assetRow
	Cursor int
	Height int
	Offset int
}

// NewInspectModel creates a model for doc. title is usually the file path.
func NewInspectModel(title string, doc codec.Document) InspectModel {
	return InspectModel{
		Title:  title,
		Header: documentHeader(doc),
		Rows:   summarize(doc),
		Height: 15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Rows))
		case "end", "G":
			m.move(len(m.Rows))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-9, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta and keeps it inside the visible window.
func (m *InspectModel) move(delta int) {
	if len(m.Rows) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Rows)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.Header))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no assets"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(renderTable(m.Rows, m.Offset, end, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
