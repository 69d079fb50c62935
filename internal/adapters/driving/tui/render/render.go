// Package render turns rich-text documents into styled terminal text.
// It is shared by the TUI reader view and the CLI view command.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// Renderer renders documents with a style set and a wrap width.
type Renderer struct {
	styles *styles.Styles
	width  int
}

// New creates a renderer. Width 0 disables wrapping.
func New(s *styles.Styles, width int) *Renderer {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Renderer{styles: s, width: width}
}

// Document renders all blocks of a document, separated by blank lines.
func (r *Renderer) Document(d *domain.Document) string {
	if d == nil {
		return ""
	}

	ordinal := 0
	lines := make([]string, 0, len(d.Blocks))
	for i := range d.Blocks {
		b := &d.Blocks[i]
		if b.Type == domain.BlockOrderedListItem {
			ordinal++
		} else {
			ordinal = 0
		}
		lines = append(lines, r.block(d, b, ordinal))
	}
	return strings.Join(lines, "\n\n")
}

// block renders one block with its prefix and inline styling.
func (r *Renderer) block(d *domain.Document, b *domain.Block, ordinal int) string {
	switch b.Type {
	case domain.BlockAtomic:
		return r.atomic(d, b)

	case domain.BlockHeaderOne, domain.BlockHeaderTwo, domain.BlockHeaderThree,
		domain.BlockHeaderFour, domain.BlockHeaderFive, domain.BlockHeaderSix:
		return r.styles.Title.Render(b.Text)

	case domain.BlockBlockquote:
		return r.styles.Quote.Render("│ " + b.Text)

	case domain.BlockCodeBlock:
		return r.styles.Code.Render(b.Text)

	case domain.BlockUnorderedListItem:
		return r.indent(b.Depth) + "• " + r.inline(b)

	case domain.BlockOrderedListItem:
		return fmt.Sprintf("%s%d. %s", r.indent(b.Depth), ordinal, r.inline(b))

	default:
		text := r.inline(b)
		if r.width > 0 {
			text = lipgloss.NewStyle().Width(r.width).Render(text)
		}
		return text
	}
}

func (r *Renderer) indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// atomic renders the image placeholder for an atomic block.
func (r *Renderer) atomic(d *domain.Document, b *domain.Block) string {
	for _, er := range b.EntityRanges {
		entity, ok := d.Entities[er.Key]
		if !ok {
			continue
		}
		label := "[image"
		if entity.Data.Width != nil && entity.Data.Height != nil {
			label += fmt.Sprintf(" %.0fx%.0f", *entity.Data.Width, *entity.Data.Height)
		}
		if entity.Data.Src != "" {
			label += " " + entity.Data.Src
		}
		label += "]"
		return r.styles.Muted.Render(label)
	}
	return r.styles.Muted.Render("[image]")
}

// inline applies style ranges to a block's text, rune by rune. Ranges
// may overlap; each rune gets the union of the styles covering it.
func (r *Renderer) inline(b *domain.Block) string {
	if len(b.StyleRanges) == 0 {
		return b.Text
	}

	runes := []rune(b.Text)
	var out strings.Builder
	var run []rune
	var runStyles styleSet

	flush := func() {
		if len(run) == 0 {
			return
		}
		out.WriteString(r.applyStyles(string(run), runStyles))
		run = run[:0]
	}

	for i, ch := range runes {
		current := stylesAt(b.StyleRanges, i)
		if i == 0 || current != runStyles {
			flush()
			runStyles = current
		}
		run = append(run, ch)
	}
	flush()

	return out.String()
}

// styleSet is a bitmask of the four inline styles.
type styleSet uint8

const (
	setBold styleSet = 1 << iota
	setItalic
	setUnderline
	setCode
)

func stylesAt(ranges []domain.StyleRange, pos int) styleSet {
	var set styleSet
	for _, sr := range ranges {
		if pos < sr.Offset || pos >= sr.Offset+sr.Length {
			continue
		}
		switch sr.Style {
		case domain.StyleBold:
			set |= setBold
		case domain.StyleItalic:
			set |= setItalic
		case domain.StyleUnderline:
			set |= setUnderline
		case domain.StyleCode:
			set |= setCode
		}
	}
	return set
}

func (r *Renderer) applyStyles(text string, set styleSet) string {
	if set == 0 {
		return text
	}
	if set&setCode != 0 {
		return r.styles.Code.Render(text)
	}
	style := lipgloss.NewStyle()
	if set&setBold != 0 {
		style = style.Bold(true)
	}
	if set&setItalic != 0 {
		style = style.Italic(true)
	}
	if set&setUnderline != 0 {
		style = style.Underline(true)
	}
	return style.Render(text)
}
