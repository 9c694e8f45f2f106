package main

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	deskTeal   = lipgloss.Color("#008080") // classic desktop teal
	noteYellow = lipgloss.Color("#FFFF99")
	noteBlue   = lipgloss.Color("#99CCFF")
	noteRed    = lipgloss.Color("#FFAAAA")
	hotPink    = lipgloss.Color("#FF33CC")
	inkBlack   = lipgloss.Color("#000000")
	boneWhite  = lipgloss.Color("#FFFFFF")
	mutedGray  = lipgloss.Color("#6B7280")

	// Desktop
	desktopStyle = lipgloss.NewStyle().
			Background(deskTeal)

	noteUserStyle = lipgloss.NewStyle().
			Background(noteYellow).
			Foreground(inkBlack)

	noteReplyStyle = lipgloss.NewStyle().
			Background(noteBlue).
			Foreground(inkBlack)

	noteErrorStyle = lipgloss.NewStyle().
			Background(noteRed).
			Foreground(inkBlack)

	closeGlyphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CC0000")).
			Bold(true)

	trashStyle = lipgloss.NewStyle().
			Foreground(boneWhite).
			Background(lipgloss.Color("#004C4C"))

	trashHotStyle = lipgloss.NewStyle().
			Foreground(inkBlack).
			Background(hotPink).
			Bold(true)

	// Dock and status
	dockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(boneWhite)

	dockKeyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(hotPink).
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#33FF99")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#EF4444")).
				Bold(true)

	// Modal panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(hotPink).
			Padding(1, 2)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(hotPink).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(hotPink).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedGray)
)

// noteStyle picks the card style for a note kind. Returned by pointer so the
// grid renderer can batch adjacent cells that share a style.
func noteStyle(kind NoteKind) *lipgloss.Style {
	switch kind {
	case NoteReply:
		return &noteReplyStyle
	case NoteError:
		return &noteErrorStyle
	default:
		return &noteUserStyle
	}
}
