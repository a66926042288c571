package tview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme holds the colors primitives pick up when they are created.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color
	BorderColor              tcell.Color
	TitleColor               tcell.Color
	// GraphicsColor is used for scroll bars.
	GraphicsColor tcell.Color

	PrimaryTextColor   tcell.Color
	SecondaryTextColor tcell.Color
	// TertiaryTextColor marks items that cannot be selected.
	TertiaryTextColor tcell.Color

	SelectedBackgroundColor tcell.Color
	SelectedTextColor       tcell.Color
	// FocusedItemColor is the color of the marker in front of the item
	// holding the keyboard focus.
	FocusedItemColor tcell.Color
}

// Styles is the theme used by new primitives. Change it before creating
// them.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	BorderColor:              color.White,
	TitleColor:               color.White,
	GraphicsColor:            color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Yellow,
	TertiaryTextColor:        color.Green,
	SelectedBackgroundColor:  color.Blue,
	SelectedTextColor:        color.White,
	FocusedItemColor:         color.Yellow,
}
