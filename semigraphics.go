package tview

// Glyphs used when drawing boxes, selection markers and scroll bars.
const (
	SemigraphicsHorizontalEllipsis = "…"

	BoxDrawingsLightHorizontal      = "─"
	BoxDrawingsHeavyHorizontal      = "━"
	BoxDrawingsLightVertical        = "│"
	BoxDrawingsHeavyVertical        = "┃"
	BoxDrawingsLightDownAndRight    = "┌"
	BoxDrawingsHeavyDownAndRight    = "┏"
	BoxDrawingsLightDownAndLeft     = "┐"
	BoxDrawingsHeavyDownAndLeft     = "┓"
	BoxDrawingsLightUpAndRight      = "└"
	BoxDrawingsHeavyUpAndRight      = "┗"
	BoxDrawingsLightUpAndLeft       = "┘"
	BoxDrawingsHeavyUpAndLeft       = "┛"
	BoxDrawingsLightArcDownAndRight = "╭"
	BoxDrawingsLightArcDownAndLeft  = "╮"
	BoxDrawingsLightArcUpAndLeft    = "╯"
	BoxDrawingsLightArcUpAndRight   = "╰"
	BlackRightPointingSmallTriangle = "▸"
)
