package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockType identifies the structural kind of a document block.
type BlockType string

const (
	BlockUnstyled          BlockType = "unstyled"
	BlockHeaderOne         BlockType = "header-one"
	BlockHeaderTwo         BlockType = "header-two"
	BlockHeaderThree       BlockType = "header-three"
	BlockHeaderFour        BlockType = "header-four"
	BlockHeaderFive        BlockType = "header-five"
	BlockHeaderSix         BlockType = "header-six"
	BlockBlockquote        BlockType = "blockquote"
	BlockUnorderedListItem BlockType = "unordered-list-item"
	BlockOrderedListItem   BlockType = "ordered-list-item"
	BlockCodeBlock         BlockType = "code-block"
	BlockAtomic            BlockType = "atomic"
)

// BlockTypes lists every valid block type.
var BlockTypes = []BlockType{
	BlockUnstyled,
	BlockHeaderOne,
	BlockHeaderTwo,
	BlockHeaderThree,
	BlockHeaderFour,
	BlockHeaderFive,
	BlockHeaderSix,
	BlockBlockquote,
	BlockUnorderedListItem,
	BlockOrderedListItem,
	BlockCodeBlock,
	BlockAtomic,
}

// ParseBlockType validates a block type string from the wire.
func ParseBlockType(s string) (BlockType, error) {
	for _, t := range BlockTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: block type %q", ErrUnsupportedType, s)
}

// IsList reports whether the block type is a list item.
func (t BlockType) IsList() bool {
	return t == BlockUnorderedListItem || t == BlockOrderedListItem
}

// InlineStyle is a character-level formatting style.
type InlineStyle string

const (
	StyleBold      InlineStyle = "BOLD"
	StyleItalic    InlineStyle = "ITALIC"
	StyleUnderline InlineStyle = "UNDERLINE"
	StyleCode      InlineStyle = "CODE"
)

// InlineStyles lists every valid inline style.
var InlineStyles = []InlineStyle{StyleBold, StyleItalic, StyleUnderline, StyleCode}

// ParseInlineStyle validates an inline style string from the wire.
func ParseInlineStyle(s string) (InlineStyle, error) {
	for _, st := range InlineStyles {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: inline style %q", ErrUnsupportedType, s)
}

// StyleRange marks a span of styled text within a block.
// Ranges keep their insertion order so re-rendering is deterministic.
type StyleRange struct {
	Style  InlineStyle
	Offset int
	Length int
}

// Covers reports whether the range spans [from, to) entirely.
func (r StyleRange) Covers(from, to int) bool {
	return r.Offset <= from && r.Offset+r.Length >= to
}

// EntityRange links a span of a block to an entity by key.
// Atomic blocks carry exactly one, covering their placeholder text.
type EntityRange struct {
	Offset int
	Length int
	Key    int
}

// EntityType identifies the kind of embedded resource.
type EntityType string

// EntityImage is the only entity type the platform stores.
const EntityImage EntityType = "IMAGE"

// Mutability describes whether entity data may change after creation.
type Mutability string

// Mutable entities allow in-place data updates (image resize) without
// re-inserting the block that references them.
const Mutable Mutability = "MUTABLE"

// ImageData holds the payload of an IMAGE entity. Size and position are
// explicit optionals: nil means the value was never set, which renders
// differently from an explicit zero.
type ImageData struct {
	Src    string
	Width  *float64
	Height *float64
	Left   *float64
	Top    *float64
}

// ImagePatch carries partial updates for ImageData. Nil fields are left
// untouched by UpdateEntityData.
type ImagePatch struct {
	Src    *string
	Width  *float64
	Height *float64
	Left   *float64
	Top    *float64
}

// Entity is an embedded non-text resource referenced by an atomic block.
type Entity struct {
	Key        int
	Type       EntityType
	Mutability Mutability
	Data       ImageData
}

// Block is one structural unit of a document: a paragraph, heading, list
// item, blockquote, code block, or an atomic entity holder.
type Block struct {
	// Key is an opaque per-block identifier. It may be regenerated on
	// encode; only entity keys are stable.
	Key string

	Type BlockType

	// Text is the literal content. Atomic blocks hold a single space so
	// the block remains selectable.
	Text string

	// Depth is the list nesting level (0 for non-list blocks).
	Depth int

	StyleRanges  []StyleRange
	EntityRanges []EntityRange
}

// MaxListDepth caps list nesting, matching the editor's tab handling.
const MaxListDepth = 4

// Selection is a cursor range over a document, expressed as block indexes
// and rune offsets within those blocks.
type Selection struct {
	StartBlock  int
	StartOffset int
	EndBlock    int
	EndOffset   int
}

// Collapsed reports whether the selection is a bare cursor.
func (s Selection) Collapsed() bool {
	return s.StartBlock == s.EndBlock && s.StartOffset == s.EndOffset
}

// CursorAt returns a collapsed selection at the given position.
func CursorAt(block, offset int) Selection {
	return Selection{StartBlock: block, StartOffset: offset, EndBlock: block, EndOffset: offset}
}

// Document is an ordered sequence of blocks plus the entity map they
// reference. Every article carries two: the body and the description.
type Document struct {
	Blocks   []Block
	Entities map[int]Entity

	// nextEntityKey is the monotonic counter for entity key assignment.
	nextEntityKey int
}

// NewDocument returns an empty document with a single unstyled block,
// mirroring a freshly opened editor.
func NewDocument() *Document {
	return &Document{
		Blocks:   []Block{{Type: BlockUnstyled}},
		Entities: map[int]Entity{},
	}
}

// IsEmpty reports whether every block has empty trimmed text and the
// entity map holds no entities. Saves are rejected when both the body
// and the description are empty.
func (d *Document) IsEmpty() bool {
	if len(d.Entities) > 0 {
		return false
	}
	for _, b := range d.Blocks {
		if strings.TrimSpace(b.Text) != "" {
			return false
		}
	}
	return true
}

// Validate checks entity referential integrity: every entity range key
// must resolve in the entity map. A document with a dangling reference
// is invalid and must not be saved or rendered.
func (d *Document) Validate() error {
	for i, b := range d.Blocks {
		for _, er := range b.EntityRanges {
			if _, ok := d.Entities[er.Key]; !ok {
				return fmt.Errorf("%w: block %d references missing entity %d", ErrMalformedDocument, i, er.Key)
			}
		}
	}
	return nil
}

// clampSelection bounds sel to the document so callers cannot index past
// the block list.
func (d *Document) clampSelection(sel Selection) Selection {
	if len(d.Blocks) == 0 {
		return Selection{}
	}
	max := len(d.Blocks) - 1
	if sel.StartBlock < 0 {
		sel.StartBlock = 0
	}
	if sel.EndBlock > max {
		sel.EndBlock = max
	}
	if sel.StartBlock > sel.EndBlock {
		sel.StartBlock, sel.EndBlock = sel.EndBlock, sel.StartBlock
	}
	return sel
}

// ToggleBlockType changes the type of every block intersecting sel.
// Toggling a block's current type reverts it to unstyled; switching a
// list block to a non-list type clears its depth.
func (d *Document) ToggleBlockType(sel Selection, t BlockType) {
	sel = d.clampSelection(sel)
	for i := sel.StartBlock; i <= sel.EndBlock && i < len(d.Blocks); i++ {
		b := &d.Blocks[i]
		if b.Type == BlockAtomic {
			continue
		}
		if b.Type == t {
			b.Type = BlockUnstyled
		} else {
			b.Type = t
		}
		if !b.Type.IsList() {
			b.Depth = 0
		}
	}
}

// ToggleInlineStyle adds style to the selection's ranges unless the style
// already covers the whole selection uniformly, in which case it removes
// it. A collapsed selection is a no-op.
func (d *Document) ToggleInlineStyle(sel Selection, style InlineStyle) {
	sel = d.clampSelection(sel)
	if sel.Collapsed() {
		return
	}
	if d.styleCoversSelection(sel, style) {
		d.removeStyle(sel, style)
		return
	}
	d.applyStyle(sel, style)
}

// styleCoversSelection reports whether style spans the entire selection.
func (d *Document) styleCoversSelection(sel Selection, style InlineStyle) bool {
	for i := sel.StartBlock; i <= sel.EndBlock && i < len(d.Blocks); i++ {
		from, to := d.blockSpan(sel, i)
		if from >= to {
			continue
		}
		if !coveredBy(d.Blocks[i].StyleRanges, style, from, to) {
			return false
		}
	}
	return true
}

// blockSpan returns the [from, to) rune span of block i within sel.
func (d *Document) blockSpan(sel Selection, i int) (int, int) {
	from := 0
	to := len([]rune(d.Blocks[i].Text))
	if i == sel.StartBlock {
		from = sel.StartOffset
	}
	if i == sel.EndBlock {
		to = sel.EndOffset
	}
	if to > len([]rune(d.Blocks[i].Text)) {
		to = len([]rune(d.Blocks[i].Text))
	}
	if from < 0 {
		from = 0
	}
	return from, to
}

func coveredBy(ranges []StyleRange, style InlineStyle, from, to int) bool {
	// Walk left to right across [from, to); every position must fall in
	// some range of the style.
	pos := from
	for pos < to {
		advanced := false
		for _, r := range ranges {
			if r.Style != style {
				continue
			}
			if r.Offset <= pos && r.Offset+r.Length > pos {
				pos = r.Offset + r.Length
				advanced = true
				break
			}
		}
		if !advanced {
			return false
		}
	}
	return true
}

func (d *Document) applyStyle(sel Selection, style InlineStyle) {
	for i := sel.StartBlock; i <= sel.EndBlock && i < len(d.Blocks); i++ {
		from, to := d.blockSpan(sel, i)
		if from >= to {
			continue
		}
		b := &d.Blocks[i]
		// Appending preserves insertion order; overlapping ranges of the
		// same style are permitted by the wire format.
		b.StyleRanges = append(b.StyleRanges, StyleRange{Style: style, Offset: from, Length: to - from})
	}
}

func (d *Document) removeStyle(sel Selection, style InlineStyle) {
	for i := sel.StartBlock; i <= sel.EndBlock && i < len(d.Blocks); i++ {
		from, to := d.blockSpan(sel, i)
		if from >= to {
			continue
		}
		b := &d.Blocks[i]
		var kept []StyleRange
		for _, r := range b.StyleRanges {
			if r.Style != style {
				kept = append(kept, r)
				continue
			}
			rFrom, rTo := r.Offset, r.Offset+r.Length
			// Keep the pieces of the range that fall outside [from, to).
			if rFrom < from {
				end := rTo
				if end > from {
					end = from
				}
				kept = append(kept, StyleRange{Style: style, Offset: rFrom, Length: end - rFrom})
			}
			if rTo > to {
				start := rFrom
				if start < to {
					start = to
				}
				kept = append(kept, StyleRange{Style: style, Offset: start, Length: rTo - start})
			}
		}
		b.StyleRanges = kept
	}
}

// InsertAtomicBlock creates a MUTABLE IMAGE entity with the next monotonic
// key and inserts an atomic block referencing it after the selection's
// block. The placeholder text is a single space so the block can be
// selected. Returns the new entity's key.
func (d *Document) InsertAtomicBlock(sel Selection, data ImageData) int {
	sel = d.clampSelection(sel)
	key := d.nextEntityKey
	d.nextEntityKey++
	if d.Entities == nil {
		d.Entities = map[int]Entity{}
	}
	d.Entities[key] = Entity{Key: key, Type: EntityImage, Mutability: Mutable, Data: data}

	block := Block{
		Type:         BlockAtomic,
		Text:         " ",
		EntityRanges: []EntityRange{{Offset: 0, Length: 1, Key: key}},
	}
	at := sel.EndBlock + 1
	if at > len(d.Blocks) {
		at = len(d.Blocks)
	}
	d.Blocks = append(d.Blocks, Block{})
	copy(d.Blocks[at+1:], d.Blocks[at:])
	d.Blocks[at] = block
	return key
}

// UpdateEntityData merges patch into the entity's data in place. Block
// structure is untouched; this is how interactive image resize persists.
func (d *Document) UpdateEntityData(key int, patch ImagePatch) error {
	e, ok := d.Entities[key]
	if !ok {
		return fmt.Errorf("%w: entity %d", ErrNotFound, key)
	}
	if patch.Src != nil {
		e.Data.Src = *patch.Src
	}
	if patch.Width != nil {
		e.Data.Width = patch.Width
	}
	if patch.Height != nil {
		e.Data.Height = patch.Height
	}
	if patch.Left != nil {
		e.Data.Left = patch.Left
	}
	if patch.Top != nil {
		e.Data.Top = patch.Top
	}
	d.Entities[key] = e
	return nil
}

// IndentListItem adjusts the depth of a list block by delta, bounded to
// [0, MaxListDepth]. Non-list blocks are unaffected.
func (d *Document) IndentListItem(block int, delta int) {
	if block < 0 || block >= len(d.Blocks) {
		return
	}
	b := &d.Blocks[block]
	if !b.Type.IsList() {
		return
	}
	b.Depth += delta
	if b.Depth < 0 {
		b.Depth = 0
	}
	if b.Depth > MaxListDepth {
		b.Depth = MaxListDepth
	}
}

// Clone returns a deep copy that stays fixed while the original keeps
// being edited. Callers handing a document to another goroutine must
// clone it first.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{
		Blocks:        make([]Block, len(d.Blocks)),
		Entities:      make(map[int]Entity, len(d.Entities)),
		nextEntityKey: d.nextEntityKey,
	}
	for i, b := range d.Blocks {
		b.StyleRanges = append([]StyleRange(nil), b.StyleRanges...)
		b.EntityRanges = append([]EntityRange(nil), b.EntityRanges...)
		c.Blocks[i] = b
	}
	for k, e := range d.Entities {
		e.Data.Width = cloneFloat(e.Data.Width)
		e.Data.Height = cloneFloat(e.Data.Height)
		e.Data.Left = cloneFloat(e.Data.Left)
		e.Data.Top = cloneFloat(e.Data.Top)
		c.Entities[k] = e
	}
	return c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// SeedEntityCounter moves the monotonic entity counter past the highest
// key present. Decoders call this so keys keep ascending after a reload.
func (d *Document) SeedEntityCounter() {
	for k := range d.Entities {
		if k >= d.nextEntityKey {
			d.nextEntityKey = k + 1
		}
	}
}

// PlainText joins block texts with newlines. Used for previews and the
// feed's client-side search.
func (d *Document) PlainText() string {
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if b.Type == BlockAtomic {
			continue
		}
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n")
}

// String implements fmt.Stringer for diagnostics.
func (d *Document) String() string {
	return "document(" + strconv.Itoa(len(d.Blocks)) + " blocks, " + strconv.Itoa(len(d.Entities)) + " entities)"
}
