package views

import (
	"net/url"
	"path"
	"strings"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// imageLabel describes a dish image in text: the bundled asset name or
// the host serving it.
func imageLabel(d *models.Dish) string {
	img := d.ResolveImage()
	if name, ok := models.Assets[img]; ok {
		return "▣ " + name
	}
	u, err := url.Parse(img)
	switch {
	case err == nil && u.Host != "":
		return "▣ " + u.Host
	case err == nil && u.Scheme == "file":
		return "▣ " + path.Base(u.Path)
	case strings.HasPrefix(img, "/"):
		return "▣ " + path.Base(img)
	}
	return "▣ image"
}

// renderTagChips renders tags as chips on one line, cut at width.
func renderTagChips(tags []string, width int) string {
	chip := lipgloss.NewStyle().
		Foreground(theme.Current.Text).
		Background(theme.Current.Overlay).
		Padding(0, 1)

	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		chips = append(chips, chip.Render(t))
	}
	line := strings.Join(chips, " ")
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}

// fitLines pads or cuts s to exactly height lines, each at most width
// cells wide.
func fitLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// overlay draws top over base with its top-left corner at column x, row
// y. Parts of top outside the width×height screen are clipped.
func overlay(base, top string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, tl := range strings.Split(top, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}

		left := x
		tw := ansi.StringWidth(tl)
		if left < 0 {
			tl = ansi.TruncateLeft(tl, -left, "")
			tw += left
			left = 0
		}
		if left+tw > width {
			tl = ansi.Truncate(tl, width-left, "")
			tw = width - left
		}
		if tw <= 0 {
			continue
		}

		bl := baseLines[row]
		bw := ansi.StringWidth(bl)
		if bw < left {
			bl += strings.Repeat(" ", left-bw)
			bw = left
		}
		line := ansi.Truncate(bl, left, "") + tl
		if bw > left+tw {
			line += ansi.TruncateLeft(bl, left+tw, "")
		}
		baseLines[row] = line
	}
	return strings.Join(baseLines, "\n")
}

// blank returns a width×height block of spaces.
func blank(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
