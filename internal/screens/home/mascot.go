package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: perfect day
	MascotAlert                            // Orange, exclamation: progress unsaved
)

const mascotIdle = `╭───────╮
│ ◉   ◉ │
│ ∿∿∿∿∿ │
╰───┬───╯`

const mascotCelebrating = `╭───────╮
│ ★   ★ │
│ ∿∿∿∿∿ │
╰─╥─┬─╥─╯
  ╚═══╝`

const mascotAlert = `╭───────╮
│ ◉   ◉ │ !
│ ∿∿∿∿∿ │
╰───┬───╯`

// mascotFor picks the mascot for the day's state. Unsaved progress wins
// over a perfect day.
func mascotFor(score int, unsaved bool) MascotVariant {
	switch {
	case unsaved:
		return MascotAlert
	case score == 100:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Gold
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
