package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/verbiz/internal/ui/theme"
)

const bannerArt = `
 ██╗   ██╗███████╗██████╗ ██████╗ ██╗███████╗
 ██║   ██║██╔════╝██╔══██╗██╔══██╗██║╚══███╔╝
 ██║   ██║█████╗  ██████╔╝██████╔╝██║  ███╔╝
 ╚██╗ ██╔╝██╔══╝  ██╔══██╗██╔══██╗██║ ███╔╝
  ╚████╔╝ ███████╗██║  ██║██████╔╝██║███████╗
   ╚═══╝  ╚══════╝╚═╝  ╚═╝╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "V E R B I Z"

// RenderBanner returns the banner in the primary color, falling back to a
// single line below 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
