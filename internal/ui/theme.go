package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent                   string
	Bullet                                 string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Bullet:   "•",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
	}
}

// SetTheme switches the current theme. Unknown names fall back to classic.
// "mono" also turns colors off.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Bullet:   "◆",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		disableColor = true
		current = Theme{
			Name:     "mono",
			Bullet:   "-",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default:
		current = classic()
	}
}

// Current returns the active theme.
func Current() Theme { return current }
