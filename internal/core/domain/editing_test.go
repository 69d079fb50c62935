package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styledBlock(text string, ranges ...StyleRange) *Document {
	return &Document{
		Blocks:   []Block{{Type: BlockUnstyled, Text: text, StyleRanges: ranges}},
		Entities: map[int]Entity{},
	}
}

func TestInsertText_ShiftsLaterRanges(t *testing.T) {
	d := styledBlock("hello world", StyleRange{Style: StyleBold, Offset: 6, Length: 5})

	d.InsertText(0, 0, "oh ")

	assert.Equal(t, "oh hello world", d.Blocks[0].Text)
	assert.Equal(t, 9, d.Blocks[0].StyleRanges[0].Offset)
	assert.Equal(t, 5, d.Blocks[0].StyleRanges[0].Length)
}

func TestInsertText_ExtendsSpanWhenTypingInside(t *testing.T) {
	d := styledBlock("bold text", StyleRange{Style: StyleBold, Offset: 0, Length: 4})

	d.InsertText(0, 2, "xx")

	assert.Equal(t, "boxxld text", d.Blocks[0].Text)
	assert.Equal(t, 6, d.Blocks[0].StyleRanges[0].Length)
}

func TestInsertText_ExtendsSpanWhenTypingAtItsEnd(t *testing.T) {
	d := styledBlock("bold text", StyleRange{Style: StyleBold, Offset: 0, Length: 4})

	d.InsertText(0, 4, "er")

	assert.Equal(t, "bolder text", d.Blocks[0].Text)
	assert.Equal(t, 6, d.Blocks[0].StyleRanges[0].Length)
}

func TestInsertText_StartOfSpanStaysOutside(t *testing.T) {
	d := styledBlock("x bold", StyleRange{Style: StyleBold, Offset: 2, Length: 4})

	d.InsertText(0, 2, "un")

	assert.Equal(t, "x unbold", d.Blocks[0].Text)
	assert.Equal(t, 4, d.Blocks[0].StyleRanges[0].Offset)
	assert.Equal(t, 4, d.Blocks[0].StyleRanges[0].Length)
}

func TestInsertText_AtomicBlockIsNoOp(t *testing.T) {
	d := &Document{
		Blocks:   []Block{{Type: BlockAtomic, Text: " "}},
		Entities: map[int]Entity{},
	}

	d.InsertText(0, 0, "nope")

	assert.Equal(t, " ", d.Blocks[0].Text)
}

func TestInsertText_HandlesRunes(t *testing.T) {
	d := styledBlock("héllo", StyleRange{Style: StyleBold, Offset: 0, Length: 5})

	d.InsertText(0, 4, "ö")

	assert.Equal(t, "héllöo", d.Blocks[0].Text)
	assert.Equal(t, 6, d.Blocks[0].StyleRanges[0].Length)
}

func TestDeleteText_ShrinksOverlappingRange(t *testing.T) {
	d := styledBlock("hello world", StyleRange{Style: StyleBold, Offset: 0, Length: 5})

	d.DeleteText(0, 3, 4)

	assert.Equal(t, "helorld", d.Blocks[0].Text)
	require.Len(t, d.Blocks[0].StyleRanges, 1)
	assert.Equal(t, 0, d.Blocks[0].StyleRanges[0].Offset)
	assert.Equal(t, 3, d.Blocks[0].StyleRanges[0].Length)
}

func TestDeleteText_DropsEmptiedRange(t *testing.T) {
	d := styledBlock("abcdef", StyleRange{Style: StyleBold, Offset: 2, Length: 2})

	d.DeleteText(0, 2, 2)

	assert.Equal(t, "abef", d.Blocks[0].Text)
	assert.Empty(t, d.Blocks[0].StyleRanges)
}

func TestDeleteText_ShiftsLaterRange(t *testing.T) {
	d := styledBlock("abcdef", StyleRange{Style: StyleBold, Offset: 4, Length: 2})

	d.DeleteText(0, 0, 2)

	assert.Equal(t, "cdef", d.Blocks[0].Text)
	assert.Equal(t, 2, d.Blocks[0].StyleRanges[0].Offset)
}

func TestDeleteText_RemovesOrphanedEntity(t *testing.T) {
	d := &Document{
		Blocks: []Block{{
			Type:         BlockUnstyled,
			Text:         "see this",
			EntityRanges: []EntityRange{{Offset: 4, Length: 4, Key: 0}},
		}},
		Entities: map[int]Entity{0: {Key: 0, Type: EntityImage}},
	}

	d.DeleteText(0, 4, 4)

	assert.Equal(t, "see ", d.Blocks[0].Text)
	assert.Empty(t, d.Blocks[0].EntityRanges)
	assert.Empty(t, d.Entities)
}

func TestSplitBlock_DistributesRanges(t *testing.T) {
	d := styledBlock("boldplain", StyleRange{Style: StyleBold, Offset: 0, Length: 9})

	d.SplitBlock(0, 4)

	require.Len(t, d.Blocks, 2)
	assert.Equal(t, "bold", d.Blocks[0].Text)
	assert.Equal(t, "plain", d.Blocks[1].Text)
	require.Len(t, d.Blocks[0].StyleRanges, 1)
	assert.Equal(t, 4, d.Blocks[0].StyleRanges[0].Length)
	require.Len(t, d.Blocks[1].StyleRanges, 1)
	assert.Equal(t, 0, d.Blocks[1].StyleRanges[0].Offset)
	assert.Equal(t, 5, d.Blocks[1].StyleRanges[0].Length)
}

func TestSplitBlock_KeepsTypeAndDepth(t *testing.T) {
	d := &Document{
		Blocks:   []Block{{Type: BlockUnorderedListItem, Text: "ab", Depth: 2}},
		Entities: map[int]Entity{},
	}

	d.SplitBlock(0, 1)

	require.Len(t, d.Blocks, 2)
	assert.Equal(t, BlockUnorderedListItem, d.Blocks[1].Type)
	assert.Equal(t, 2, d.Blocks[1].Depth)
}

func TestMergeWithPrevious_ShiftsRanges(t *testing.T) {
	d := &Document{
		Blocks: []Block{
			{Type: BlockUnstyled, Text: "first "},
			{Type: BlockUnstyled, Text: "second", StyleRanges: []StyleRange{{Style: StyleItalic, Offset: 0, Length: 6}}},
		},
		Entities: map[int]Entity{},
	}

	d.MergeWithPrevious(1)

	require.Len(t, d.Blocks, 1)
	assert.Equal(t, "first second", d.Blocks[0].Text)
	require.Len(t, d.Blocks[0].StyleRanges, 1)
	assert.Equal(t, 6, d.Blocks[0].StyleRanges[0].Offset)
}

func TestMergeWithPrevious_RefusesAtomic(t *testing.T) {
	d := &Document{
		Blocks: []Block{
			{Type: BlockAtomic, Text: " ", EntityRanges: []EntityRange{{Length: 1, Key: 0}}},
			{Type: BlockUnstyled, Text: "after"},
		},
		Entities: map[int]Entity{0: {Key: 0, Type: EntityImage}},
	}

	d.MergeWithPrevious(1)

	assert.Len(t, d.Blocks, 2)
}

func TestRemoveBlock_DropsEntityWithAtomicBlock(t *testing.T) {
	d := &Document{
		Blocks: []Block{
			{Type: BlockUnstyled, Text: "text"},
			{Type: BlockAtomic, Text: " ", EntityRanges: []EntityRange{{Length: 1, Key: 0}}},
		},
		Entities: map[int]Entity{0: {Key: 0, Type: EntityImage}},
	}

	d.RemoveBlock(1)

	assert.Len(t, d.Blocks, 1)
	assert.Empty(t, d.Entities)
}

func TestRemoveBlock_NeverRemovesLastBlock(t *testing.T) {
	d := NewDocument()

	d.RemoveBlock(0)

	assert.Len(t, d.Blocks, 1)
}
