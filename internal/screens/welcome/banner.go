package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

const bannerArt = ` █████╗ ██████╗  █████╗ ██████╗ ████████╗██╗ ██████╗
██╔══██╗██╔══██╗██╔══██╗██╔══██╗╚══██╔══╝██║██╔═══██╗
███████║██║  ██║███████║██████╔╝   ██║   ██║██║   ██║
██╔══██║██║  ██║██╔══██║██╔═══╝    ██║   ██║██║▄▄ ██║
██║  ██║██████╔╝██║  ██║██║        ██║   ██║╚██████╔╝
╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝        ╚═╝   ╚═╝ ╚══▀▀═╝`

const bannerCompact = "A D A P T I Q"

// bannerLines is the number of rows of the full banner.
var bannerLines = strings.Count(bannerArt, "\n") + 1

// RenderBanner returns the first rows of the banner in the primary color.
// Narrow terminals get a one-line fallback.
func RenderBanner(width, rows int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	lines := strings.Split(bannerArt, "\n")
	rows = min(max(rows, 0), len(lines))
	return style.Render(strings.Join(lines[:rows], "\n"))
}
