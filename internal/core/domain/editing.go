package domain

// Text editing operations. Each keeps style and entity ranges
// consistent with the mutated text: ranges after the edit point shift,
// ranges spanning it grow or shrink, and ranges emptied by a deletion
// are dropped.

// InsertText inserts text into a block at a rune offset. Typing at the
// end of a styled span extends the span, matching editor behaviour.
// Atomic blocks are not editable; the call is a no-op for them.
func (d *Document) InsertText(block, offset int, text string) {
	if block < 0 || block >= len(d.Blocks) || text == "" {
		return
	}
	b := &d.Blocks[block]
	if b.Type == BlockAtomic {
		return
	}

	runes := []rune(b.Text)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	inserted := []rune(text)

	out := make([]rune, 0, len(runes)+len(inserted))
	out = append(out, runes[:offset]...)
	out = append(out, inserted...)
	out = append(out, runes[offset:]...)
	b.Text = string(out)

	n := len(inserted)
	for i := range b.StyleRanges {
		r := &b.StyleRanges[i]
		switch {
		case offset <= r.Offset:
			// Typing at the exact start of a span stays outside it.
			r.Offset += n
		case offset <= r.Offset+r.Length:
			r.Length += n
		}
	}
	for i := range b.EntityRanges {
		r := &b.EntityRanges[i]
		switch {
		case offset <= r.Offset:
			r.Offset += n
		case offset < r.Offset+r.Length:
			r.Length += n
		}
	}
}

// DeleteText removes count runes starting at a rune offset.
func (d *Document) DeleteText(block, offset, count int) {
	if block < 0 || block >= len(d.Blocks) || count <= 0 {
		return
	}
	b := &d.Blocks[block]
	if b.Type == BlockAtomic {
		return
	}

	runes := []rune(b.Text)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(runes) {
		return
	}
	if offset+count > len(runes) {
		count = len(runes) - offset
	}

	out := make([]rune, 0, len(runes)-count)
	out = append(out, runes[:offset]...)
	out = append(out, runes[offset+count:]...)
	b.Text = string(out)

	b.StyleRanges = shrinkStyleRanges(b.StyleRanges, offset, count)
	b.EntityRanges, _ = shrinkEntityRanges(b.EntityRanges, offset, count)
	d.dropUnreferencedEntities()
}

// SplitBlock splits a block at a rune offset into two blocks of the
// same type. The cursor ends up at the start of the second block.
func (d *Document) SplitBlock(block, offset int) {
	if block < 0 || block >= len(d.Blocks) {
		return
	}
	b := d.Blocks[block]
	if b.Type == BlockAtomic {
		return
	}

	runes := []rune(b.Text)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}

	first := Block{
		Key:   b.Key,
		Type:  b.Type,
		Text:  string(runes[:offset]),
		Depth: b.Depth,
	}
	second := Block{
		Type:  b.Type,
		Text:  string(runes[offset:]),
		Depth: b.Depth,
	}

	for _, r := range b.StyleRanges {
		head, tail, ok := splitRange(r.Offset, r.Length, offset)
		if head.length > 0 {
			first.StyleRanges = append(first.StyleRanges, StyleRange{Style: r.Style, Offset: head.offset, Length: head.length})
		}
		if ok && tail.length > 0 {
			second.StyleRanges = append(second.StyleRanges, StyleRange{Style: r.Style, Offset: tail.offset, Length: tail.length})
		}
	}
	for _, r := range b.EntityRanges {
		head, tail, ok := splitRange(r.Offset, r.Length, offset)
		if head.length > 0 {
			first.EntityRanges = append(first.EntityRanges, EntityRange{Key: r.Key, Offset: head.offset, Length: head.length})
		}
		if ok && tail.length > 0 {
			second.EntityRanges = append(second.EntityRanges, EntityRange{Key: r.Key, Offset: tail.offset, Length: tail.length})
		}
	}

	blocks := make([]Block, 0, len(d.Blocks)+1)
	blocks = append(blocks, d.Blocks[:block]...)
	blocks = append(blocks, first, second)
	blocks = append(blocks, d.Blocks[block+1:]...)
	d.Blocks = blocks
}

// MergeWithPrevious appends a block's text onto the previous block and
// removes it. Ranges of the merged block shift by the previous block's
// rune length. Merging into or out of an atomic block is refused.
func (d *Document) MergeWithPrevious(block int) {
	if block <= 0 || block >= len(d.Blocks) {
		return
	}
	prev := &d.Blocks[block-1]
	cur := d.Blocks[block]
	if prev.Type == BlockAtomic || cur.Type == BlockAtomic {
		return
	}

	shift := len([]rune(prev.Text))
	prev.Text += cur.Text
	for _, r := range cur.StyleRanges {
		r.Offset += shift
		prev.StyleRanges = append(prev.StyleRanges, r)
	}
	for _, r := range cur.EntityRanges {
		r.Offset += shift
		prev.EntityRanges = append(prev.EntityRanges, r)
	}

	d.Blocks = append(d.Blocks[:block], d.Blocks[block+1:]...)
}

// RemoveBlock deletes a block outright. The last block is never
// removed; documents always hold at least one block.
func (d *Document) RemoveBlock(block int) {
	if block < 0 || block >= len(d.Blocks) || len(d.Blocks) == 1 {
		return
	}
	d.Blocks = append(d.Blocks[:block], d.Blocks[block+1:]...)
	d.dropUnreferencedEntities()
}

type rangePart struct {
	offset int
	length int
}

// splitRange cuts a half-open range [offset, offset+length) at cut.
// The second return is the part landing in the tail block, rebased to
// its start; ok reports whether a tail part exists.
func splitRange(offset, length, cut int) (head, tail rangePart, ok bool) {
	end := offset + length
	if end <= cut {
		return rangePart{offset, length}, rangePart{}, false
	}
	if offset >= cut {
		return rangePart{}, rangePart{offset - cut, length}, true
	}
	return rangePart{offset, cut - offset}, rangePart{0, end - cut}, true
}

func shrinkStyleRanges(ranges []StyleRange, offset, count int) []StyleRange {
	out := ranges[:0]
	for _, r := range ranges {
		newOffset, newLength := shrinkRange(r.Offset, r.Length, offset, count)
		if newLength > 0 {
			out = append(out, StyleRange{Style: r.Style, Offset: newOffset, Length: newLength})
		}
	}
	return out
}

func shrinkEntityRanges(ranges []EntityRange, offset, count int) ([]EntityRange, bool) {
	dropped := false
	out := ranges[:0]
	for _, r := range ranges {
		newOffset, newLength := shrinkRange(r.Offset, r.Length, offset, count)
		if newLength > 0 {
			out = append(out, EntityRange{Key: r.Key, Offset: newOffset, Length: newLength})
		} else {
			dropped = true
		}
	}
	return out, dropped
}

// shrinkRange adjusts a range for the deletion of [offset, offset+count).
func shrinkRange(rOffset, rLength, offset, count int) (int, int) {
	delEnd := offset + count
	rEnd := rOffset + rLength

	switch {
	case rEnd <= offset:
		return rOffset, rLength
	case rOffset >= delEnd:
		return rOffset - count, rLength
	default:
		overlapStart := max(rOffset, offset)
		overlapEnd := min(rEnd, delEnd)
		newLength := rLength - (overlapEnd - overlapStart)
		newOffset := rOffset
		if rOffset > offset {
			newOffset = offset
		}
		return newOffset, newLength
	}
}

// dropUnreferencedEntities removes entities no block references, so an
// image deleted from the text does not keep the document non-empty.
func (d *Document) dropUnreferencedEntities() {
	if len(d.Entities) == 0 {
		return
	}
	referenced := map[int]bool{}
	for i := range d.Blocks {
		for _, er := range d.Blocks[i].EntityRanges {
			referenced[er.Key] = true
		}
	}
	for key := range d.Entities {
		if !referenced[key] {
			delete(d.Entities, key)
		}
	}
}
