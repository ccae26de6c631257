package cli

import (
	"context"
	"strings"
	"unicode"

	"github.com/amp-labs/amp-sortedlist/envutil"
)

const (
	boxTopLeft     = "╒"
	boxBottomLeft  = "└"
	boxTopRight    = "╕"
	boxBottomRight = "┘"
	boxSide        = "│"
	boxTop         = "═"
	boxBottom      = "─"
	ellipsis       = "…"

	bannerPadding = 2
)

// Alignment positions text inside a banner.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// DefaultWidth is the banner width used by the shell.
const DefaultWidth = 48

// BannerSuppressed reports whether SORTEDLIST_NO_BANNER asks for plain output.
func BannerSuppressed(ctx context.Context) bool {
	return envutil.Bool(ctx, "SORTEDLIST_NO_BANNER", envutil.Default(false)).ValueOrElse(false)
}

// Banner draws s (one or more lines) inside a box width columns wide. Lines
// that don't fit are truncated with an ellipsis. The result ends with a newline.
func Banner(s string, width int, alignment Alignment) string {
	if width <= bannerPadding {
		return s + "\n"
	}

	inner := width - bannerPadding

	var sb strings.Builder

	sb.WriteString(boxTopLeft + strings.Repeat(boxTop, inner) + boxTopRight + "\n")

	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		sb.WriteString(boxSide + pad(line, inner, alignment) + boxSide + "\n")
	}

	sb.WriteString(boxBottomLeft + strings.Repeat(boxBottom, inner) + boxBottomRight + "\n")

	return sb.String()
}

func countGraphic(s string) int {
	count := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			count++
		}
	}

	return count
}

// truncateGraphic keeps the first n graphic runes of s.
func truncateGraphic(s string, n int) string {
	var sb strings.Builder

	count := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			if count == n {
				break
			}

			count++
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

func pad(text string, width int, alignment Alignment) string {
	length := countGraphic(text)
	if length > width {
		text = truncateGraphic(text, width-1) + ellipsis
		length = width
	}

	diff := width - length

	switch alignment {
	case AlignCenter:
		left := diff / 2 //nolint:mnd

		return strings.Repeat(" ", left) + text + strings.Repeat(" ", diff-left)
	case AlignRight:
		return strings.Repeat(" ", diff) + text
	default:
		return text + strings.Repeat(" ", diff)
	}
}
