package dashboard

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

const bannerArt = `
 ██╗     ███████╗██╗  ██╗██╗ ██████╗ ██╗   ██╗██╗███████╗
 ██║     ██╔════╝╚██╗██╔╝██║██╔═══██╗██║   ██║██║╚══███╔╝
 ██║     █████╗   ╚███╔╝ ██║██║   ██║██║   ██║██║  ███╔╝
 ██║     ██╔══╝   ██╔██╗ ██║██║▄▄ ██║██║   ██║██║ ███╔╝
 ███████╗███████╗██╔╝ ██╗██║╚██████╔╝╚██████╔╝██║███████╗
 ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝ ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "L E X I Q U I Z"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 57

// bannerMinHeight is the content height below which the compact banner is
// used so the menu stays visible.
const bannerMinHeight = 32

// renderBanner returns the LEXIQUIZ banner styled in the primary color,
// falling back to a compact form on small terminals.
func renderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 || height < bannerMinHeight {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
