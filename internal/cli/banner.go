package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

const bannerWidth = 80

// banner prints the decorations around demo output: a cyan header, yellow
// dashed separators and a green footer.
type banner struct {
	w      io.Writer
	header *color.Color
	rule   *color.Color
	footer *color.Color
}

func newBanner(w io.Writer, noColor bool) *banner {
	b := &banner{
		w:      w,
		header: color.New(color.FgCyan),
		rule:   color.New(color.FgYellow),
		footer: color.New(color.FgGreen),
	}
	if noColor {
		b.header.DisableColor()
		b.rule.DisableColor()
		b.footer.DisableColor()
	}
	return b
}

// Header prints the upper-cased title centred between two = rules,
// followed by a blank line.
func (b *banner) Header(title string) {
	b.header.Fprintln(b.w, strings.Repeat("=", bannerWidth))
	b.header.Fprintln(b.w, centerText(strings.ToUpper(title), bannerWidth))
	b.header.Fprintln(b.w, strings.Repeat("=", bannerWidth))
	fmt.Fprintln(b.w)
}

// Separator prints a dashed rule with a blank line on each side.
func (b *banner) Separator() {
	fmt.Fprintln(b.w)
	b.rule.Fprintln(b.w, strings.Repeat("-", bannerWidth))
	fmt.Fprintln(b.w)
}

// Footer prints a blank line, the centred message and a closing = rule.
func (b *banner) Footer(message string) {
	fmt.Fprintln(b.w)
	b.footer.Fprintln(b.w, centerText(message, bannerWidth))
	b.footer.Fprintln(b.w, strings.Repeat("=", bannerWidth))
}

// centerText left-pads text so it sits in the middle of width columns.
// Text at least as wide as the column is returned unchanged.
func centerText(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
