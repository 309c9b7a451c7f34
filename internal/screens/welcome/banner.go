package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindupgrade/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗██╗███╗   ██╗██████╗ ██╗   ██╗██████╗
 ████╗ ████║██║████╗  ██║██╔══██╗██║   ██║██╔══██╗
 ██╔████╔██║██║██╔██╗ ██║██║  ██║██║   ██║██████╔╝
 ██║╚██╔╝██║██║██║╚██╗██║██║  ██║██║   ██║██╔═══╝
 ██║ ╚═╝ ██║██║██║ ╚████║██████╔╝╚██████╔╝██║
 ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝  ╚═════╝ ╚═╝`

const bannerCompact = "M I N D U P G R A D E"

// RenderBanner returns the MINDUP banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 54 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 54 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
