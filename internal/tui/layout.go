package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitWidth(ln, width)
	}
	return strings.Join(lines, "\n")
}

// fitWidth pads or cuts one line to exactly width columns, ending cut lines with an ellipsis.
func fitWidth(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			return ""
		case width == 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// modalWidth picks a modal width for a terminal of the given width.
func modalWidth(termW int) int {
	w := termW - 8
	if w > 110 {
		w = 110
	}
	if w < 40 {
		w = 40
	}
	return w
}

// modalBodyWidth is the inner width of a modal box of width w.
func modalBodyWidth(w int) int {
	if w < 10 {
		return 6
	}
	return w - 4
}

// renderModalBox draws a titled, bordered box of width w around content.
func renderModalBox(w int, title, content string) string {
	bodyW := modalBodyWidth(w)
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalFg).
		Background(colorModalHeader).
		Width(bodyW).
		Render(" " + title)
	lines := strings.Split(content, "\n")
	for i, ln := range lines {
		lines[i] = fitWidth(ln, bodyW)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 1).
		Foreground(colorModalFg).
		Background(colorModalBg)
	return box.Render(header + "\n\n" + strings.Join(lines, "\n"))
}

// placeModal centers a rendered modal on a screen of the given size.
func placeModal(width, height int, modal string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}
	// Inputs render as one visual line; stray newlines would look like typed line breaks.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
