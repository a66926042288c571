// Package help draws the key bindings of a key map, either as a one-line
// bar or as aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/tview-listbox"
	"github.com/xqrs/tview-listbox/keybind"
)

// KeyMap is implemented by widgets that publish their bindings, such as
// tview.ListBoxKeyMap.
type KeyMap interface {
	// ShortHelp returns the bindings of the one-line bar.
	ShortHelp() []keybind.Keybind
	// FullHelp returns one group of bindings per column.
	FullHelp() [][]keybind.Keybind
}

// Help is a primitive showing the enabled bindings of a KeyMap.
type Help struct {
	*tview.Box
	Styles Styles

	keyMap         KeyMap
	showAll        bool
	shortSeparator string
	fullSeparator  string
	ellipsis       string
}

func New() *Help {
	return &Help{
		Box:            tview.NewBox(),
		Styles:         DefaultStyles(),
		shortSeparator: " • ",
		fullSeparator:  "    ",
		ellipsis:       tview.SemigraphicsHorizontalEllipsis,
	}
}

func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetShowAll switches between the one-line bar and the full columns.
func (h *Help) SetShowAll(showAll bool) *Help {
	if h.showAll != showAll {
		h.showAll = showAll
		h.MarkDirty()
	}
	return h
}

func (h *Help) ShowAll() bool {
	return h.showAll
}

func (h *Help) SetShortSeparator(separator string) *Help {
	h.shortSeparator = separator
	h.MarkDirty()
	return h
}

func (h *Help) SetFullSeparator(separator string) *Help {
	h.fullSeparator = separator
	h.MarkDirty()
	return h
}

// SetEllipsis sets the marker appended when bindings are cut off. An empty
// marker disables it.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	h.MarkDirty()
	return h
}

func (h *Help) SetStyles(styles Styles) *Help {
	h.Styles = styles
	h.MarkDirty()
	return h
}

// Height returns the number of rows Draw fills at the given width.
func (h *Help) Height(width int) int {
	switch {
	case h.keyMap == nil:
		return 0
	case h.showAll:
		return max(len(h.fullLines(h.keyMap.FullHelp(), width)), 1)
	}
	return 1
}

func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)
	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()
	var lines []line
	if h.showAll {
		lines = h.fullLines(h.keyMap.FullHelp(), width)
	} else {
		lines = []line{h.shortLine(h.keyMap.ShortHelp(), width)}
	}
	for row := 0; row < len(lines) && row < height; row++ {
		lines[row].draw(screen, x, y+row, width)
	}
}

// ShortHelpLine renders the one-line bar as plain text. A maxWidth of 0
// means unlimited.
func (h *Help) ShortHelpLine(bindings []keybind.Keybind, maxWidth int) string {
	return h.shortLine(bindings, maxWidth).String()
}

// FullHelpLines renders the columns as plain text lines.
func (h *Help) FullHelpLines(groups [][]keybind.Keybind, maxWidth int) []string {
	lines := h.fullLines(groups, maxWidth)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// span is a run of text in one style.
type span struct {
	text  string
	style tcell.Style
}

type line []span

func (l line) width() int {
	width := 0
	for _, s := range l {
		width += tview.StringWidth(s.text)
	}
	return width
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

func (l line) draw(screen tcell.Screen, x, y, width int) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		_, printed := tview.PrintWithStyle(screen, s.text, x, y, width, tview.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

// shortLine joins bindings with the separator until the next one would not
// fit, then ends with the ellipsis.
func (h *Help) shortLine(bindings []keybind.Keybind, maxWidth int) line {
	separator := span{text: orSpace(h.shortSeparator), style: h.Styles.ShortSeparatorStyle}

	var out line
	for _, kb := range bindings {
		entry := h.shortEntry(kb)
		if entry == nil {
			continue
		}
		if out == nil {
			if maxWidth > 0 && entry.width() > maxWidth {
				return nil
			}
			out = entry
			continue
		}
		if maxWidth > 0 && out.width()+tview.StringWidth(separator.text)+entry.width() > maxWidth {
			return append(out, h.ellipsisTail(out, maxWidth)...)
		}
		out = append(append(out, separator), entry...)
	}
	return out
}

func (h *Help) shortEntry(kb keybind.Keybind) line {
	if !kb.Enabled() {
		return nil
	}
	help := kb.Help()
	key := span{text: help.Key, style: h.Styles.ShortKeyStyle}
	desc := span{text: help.Desc, style: h.Styles.ShortDescStyle}
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return line{desc}
	case help.Desc == "":
		return line{key}
	}
	return line{key, {text: " ", style: h.Styles.ShortDescStyle}, desc}
}

// column is one group of the full help. keyWidth aligns the descriptions,
// width is the widest row.
type column struct {
	rows     []keybind.Help
	keyWidth int
	width    int
}

func newColumn(group []keybind.Keybind) column {
	var c column
	for _, kb := range group {
		help := kb.Help()
		if !kb.Enabled() || (help.Key == "" && help.Desc == "") {
			continue
		}
		c.rows = append(c.rows, help)
		c.keyWidth = max(c.keyWidth, tview.StringWidth(help.Key))
	}
	for _, help := range c.rows {
		width := c.keyWidth + tview.StringWidth(help.Desc)
		if help.Key != "" && help.Desc != "" {
			width++
		}
		c.width = max(c.width, width)
	}
	return c
}

// fullLines lays the groups out as columns, left to right, as long as they
// fit into maxWidth.
func (h *Help) fullLines(groups [][]keybind.Keybind, maxWidth int) []line {
	var columns []column
	for _, group := range groups {
		if c := newColumn(group); len(c.rows) > 0 {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return nil
	}

	separator := span{text: orSpace(h.fullSeparator), style: h.Styles.FullSeparatorStyle}
	separatorWidth := tview.StringWidth(separator.text)
	fitting, total := 0, 0
	for i, c := range columns {
		width := c.width
		if i > 0 {
			width += separatorWidth
		}
		if maxWidth > 0 && total+width > maxWidth {
			break
		}
		fitting++
		total += width
	}
	if fitting == 0 {
		return []line{{{text: h.ellipsis, style: h.Styles.EllipsisStyle}}}
	}
	cut := fitting < len(columns)
	columns = columns[:fitting]

	rows := 0
	for _, c := range columns {
		rows = max(rows, len(c.rows))
	}
	lines := make([]line, rows)
	for row := range lines {
		for i, c := range columns {
			if i > 0 {
				lines[row] = append(lines[row], separator)
			}
			lines[row] = append(lines[row], h.fullCell(c, row, i == len(columns)-1)...)
		}
	}
	if cut {
		lines[0] = append(lines[0], h.ellipsisTail(lines[0], maxWidth)...)
	}
	return lines
}

// fullCell renders row of c. Cells are padded to the column width so the
// separators stay aligned; the last column is only padded on empty rows.
func (h *Help) fullCell(c column, row int, last bool) line {
	desc := h.Styles.FullDescStyle
	if row >= len(c.rows) {
		return line{{text: strings.Repeat(" ", c.width), style: desc}}
	}

	help := c.rows[row]
	var cell line
	if help.Key != "" {
		cell = append(cell, span{text: help.Key, style: h.Styles.FullKeyStyle})
	}
	if pad := c.keyWidth - tview.StringWidth(help.Key); pad > 0 {
		cell = append(cell, span{text: strings.Repeat(" ", pad), style: h.Styles.FullKeyStyle})
	}
	if help.Key != "" && help.Desc != "" {
		cell = append(cell, span{text: " ", style: desc})
	}
	if help.Desc != "" {
		cell = append(cell, span{text: help.Desc, style: desc})
	}
	if pad := c.width - cell.width(); !last && pad > 0 {
		cell = append(cell, span{text: strings.Repeat(" ", pad), style: desc})
	}
	return cell
}

// ellipsisTail returns " …" when it fits after current, otherwise nothing.
// A clipped marker reads as broken output.
func (h *Help) ellipsisTail(current line, maxWidth int) line {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	tail := line{
		{text: " ", style: h.Styles.EllipsisStyle},
		{text: h.ellipsis, style: h.Styles.EllipsisStyle},
	}
	if current.width()+tail.width() > maxWidth {
		return nil
	}
	return tail
}

func orSpace(separator string) string {
	if separator == "" {
		return " "
	}
	return separator
}
