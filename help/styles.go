package help

import (
	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/tview-listbox"
)

// Styles holds the styles of the help bar.
type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
}

// DefaultStyles derives the styles from tview.Styles: keys in the secondary
// text color, descriptions in the primary one, separators dimmed.
func DefaultStyles() Styles {
	background := tcell.StyleDefault.Background(tview.Styles.PrimitiveBackgroundColor)
	key := background.Foreground(tview.Styles.SecondaryTextColor)
	desc := background.Foreground(tview.Styles.PrimaryTextColor)
	dim := desc.Dim(true)
	return Styles{
		ShortKeyStyle:       key,
		ShortDescStyle:      desc,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        key,
		FullDescStyle:       desc,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
	}
}
