package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

func plainRenderer() *Renderer {
	return New(nil, 0)
}

func TestRenderer_NilDocument(t *testing.T) {
	assert.Equal(t, "", plainRenderer().Document(nil))
}

func TestRenderer_PlainParagraph(t *testing.T) {
	d := domain.NewDocument()
	d.Blocks[0].Text = "hello world"

	out := plainRenderer().Document(d)

	assert.Contains(t, out, "hello world")
}

func TestRenderer_UnorderedListPrefixAndDepth(t *testing.T) {
	d := &domain.Document{
		Blocks: []domain.Block{
			{Type: domain.BlockUnorderedListItem, Text: "first"},
			{Type: domain.BlockUnorderedListItem, Text: "nested", Depth: 1},
		},
		Entities: map[int]domain.Entity{},
	}

	out := plainRenderer().Document(d)

	assert.Contains(t, out, "• first")
	assert.Contains(t, out, "  • nested")
}

func TestRenderer_OrderedListNumbersResetBetweenRuns(t *testing.T) {
	d := &domain.Document{
		Blocks: []domain.Block{
			{Type: domain.BlockOrderedListItem, Text: "one"},
			{Type: domain.BlockOrderedListItem, Text: "two"},
			{Type: domain.BlockUnstyled, Text: "interlude"},
			{Type: domain.BlockOrderedListItem, Text: "restart"},
		},
		Entities: map[int]domain.Entity{},
	}

	out := plainRenderer().Document(d)

	assert.Contains(t, out, "1. one")
	assert.Contains(t, out, "2. two")
	assert.Contains(t, out, "1. restart")
}

func TestRenderer_BlockquotePrefix(t *testing.T) {
	d := &domain.Document{
		Blocks:   []domain.Block{{Type: domain.BlockBlockquote, Text: "quoted"}},
		Entities: map[int]domain.Entity{},
	}

	out := plainRenderer().Document(d)

	assert.Contains(t, out, "│ quoted")
}

func TestRenderer_AtomicImagePlaceholder(t *testing.T) {
	w, h := 640.0, 480.0
	d := &domain.Document{
		Blocks: []domain.Block{{
			Type:         domain.BlockAtomic,
			Text:         " ",
			EntityRanges: []domain.EntityRange{{Offset: 0, Length: 1, Key: 0}},
		}},
		Entities: map[int]domain.Entity{
			0: {
				Key:        0,
				Type:       domain.EntityImage,
				Mutability: domain.Mutable,
				Data:       domain.ImageData{Src: "/media/cat.png", Width: &w, Height: &h},
			},
		},
	}

	out := plainRenderer().Document(d)

	assert.Contains(t, out, "[image 640x480 /media/cat.png]")
}

func TestRenderer_AtomicWithoutDimensions(t *testing.T) {
	d := &domain.Document{
		Blocks: []domain.Block{{
			Type:         domain.BlockAtomic,
			Text:         " ",
			EntityRanges: []domain.EntityRange{{Offset: 0, Length: 1, Key: 0}},
		}},
		Entities: map[int]domain.Entity{
			0: {Key: 0, Type: domain.EntityImage, Data: domain.ImageData{Src: "/media/cat.png"}},
		},
	}

	out := plainRenderer().Document(d)

	assert.Contains(t, out, "[image /media/cat.png]")
}

func TestRenderer_StyledTextKeepsContent(t *testing.T) {
	d := domain.NewDocument()
	d.Blocks[0].Text = "bold and plain"
	d.Blocks[0].StyleRanges = []domain.StyleRange{{Style: domain.StyleBold, Offset: 0, Length: 4}}

	out := plainRenderer().Document(d)

	// Styling may add escape codes but never drops text.
	assert.Contains(t, out, "bold")
	assert.Contains(t, out, "and plain")
}

func TestRenderer_OverlappingRangesCoverEveryRune(t *testing.T) {
	d := domain.NewDocument()
	d.Blocks[0].Text = "abcdef"
	d.Blocks[0].StyleRanges = []domain.StyleRange{
		{Style: domain.StyleBold, Offset: 0, Length: 4},
		{Style: domain.StyleItalic, Offset: 2, Length: 4},
	}

	out := plainRenderer().Document(d)

	for _, ch := range "abcdef" {
		require.Contains(t, out, string(ch))
	}
}
