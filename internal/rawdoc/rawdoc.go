// Package rawdoc converts between the in-memory document model and the
// raw JSON document format the backend stores. The wire form is an
// ordered block list plus an entity map keyed by stringified integers;
// entity ranges inside blocks reference those keys as integers.
package rawdoc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

// RawStyleRange is the wire form of an inline style span.
type RawStyleRange struct {
	Style  string `json:"style"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// RawEntityRange is the wire form of an entity reference.
type RawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// RawBlock is the wire form of one document block.
type RawBlock struct {
	Key               string           `json:"key"`
	Text              string           `json:"text"`
	Type              string           `json:"type"`
	Depth             int              `json:"depth"`
	InlineStyleRanges []RawStyleRange  `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange `json:"entityRanges"`
	Data              map[string]any   `json:"data"`
}

// RawEntityData is the wire form of an IMAGE entity's payload. Size and
// position fields are emitted as null when unset.
type RawEntityData struct {
	Src    string   `json:"src"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Left   *float64 `json:"left"`
	Top    *float64 `json:"top"`
}

// RawEntity is the wire form of one entity map value.
type RawEntity struct {
	Type       string        `json:"type"`
	Mutability string        `json:"mutability"`
	Data       RawEntityData `json:"data"`
}

// RawDocument is the transport shape of a document.
type RawDocument struct {
	Blocks    []RawBlock           `json:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap"`
}

// Encode serializes a document to its transport JSON.
func Encode(d *domain.Document) ([]byte, error) {
	raw, err := ToRaw(d)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// ToRaw builds the transport form of a document. Block keys are opaque;
// blocks without one get a fresh key.
func ToRaw(d *domain.Document) (*RawDocument, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	raw := &RawDocument{
		Blocks:    make([]RawBlock, 0, len(d.Blocks)),
		EntityMap: make(map[string]RawEntity, len(d.Entities)),
	}

	for _, b := range d.Blocks {
		rb := RawBlock{
			Key:               b.Key,
			Text:              b.Text,
			Type:              string(b.Type),
			Depth:             b.Depth,
			InlineStyleRanges: make([]RawStyleRange, 0, len(b.StyleRanges)),
			EntityRanges:      make([]RawEntityRange, 0, len(b.EntityRanges)),
			Data:              map[string]any{},
		}
		if rb.Key == "" {
			rb.Key = newBlockKey()
		}
		for _, sr := range b.StyleRanges {
			rb.InlineStyleRanges = append(rb.InlineStyleRanges, RawStyleRange{
				Style:  string(sr.Style),
				Offset: sr.Offset,
				Length: sr.Length,
			})
		}
		for _, er := range b.EntityRanges {
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange(er))
		}
		raw.Blocks = append(raw.Blocks, rb)
	}

	for key, e := range d.Entities {
		raw.EntityMap[strconv.Itoa(key)] = RawEntity{
			Type:       string(e.Type),
			Mutability: string(e.Mutability),
			Data: RawEntityData{
				Src:    e.Data.Src,
				Width:  e.Data.Width,
				Height: e.Data.Height,
				Left:   e.Data.Left,
				Top:    e.Data.Top,
			},
		}
	}

	return raw, nil
}

// Decode parses transport JSON into a document. It fails with
// domain.ErrMalformedDocument when any block's entity range does not
// resolve in the entity map: silently dropping the block would lose
// content.
func Decode(data []byte) (*domain.Document, error) {
	var raw RawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	return FromRaw(&raw)
}

// FromRaw reconstructs a document from its transport form.
func FromRaw(raw *RawDocument) (*domain.Document, error) {
	d := &domain.Document{
		Blocks:   make([]domain.Block, 0, len(raw.Blocks)),
		Entities: make(map[int]domain.Entity, len(raw.EntityMap)),
	}

	for key, re := range raw.EntityMap {
		k, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: entity key %q", domain.ErrMalformedDocument, key)
		}
		d.Entities[k] = domain.Entity{
			Key:        k,
			Type:       domain.EntityType(re.Type),
			Mutability: domain.Mutability(re.Mutability),
			Data: domain.ImageData{
				Src:    re.Data.Src,
				Width:  re.Data.Width,
				Height: re.Data.Height,
				Left:   re.Data.Left,
				Top:    re.Data.Top,
			},
		}
	}

	for i, rb := range raw.Blocks {
		bt, err := domain.ParseBlockType(rb.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", domain.ErrMalformedDocument, i, err)
		}
		b := domain.Block{
			Key:   rb.Key,
			Type:  bt,
			Text:  rb.Text,
			Depth: rb.Depth,
		}
		for _, sr := range rb.InlineStyleRanges {
			st, err := domain.ParseInlineStyle(sr.Style)
			if err != nil {
				return nil, fmt.Errorf("%w: block %d: %v", domain.ErrMalformedDocument, i, err)
			}
			b.StyleRanges = append(b.StyleRanges, domain.StyleRange{
				Style:  st,
				Offset: sr.Offset,
				Length: sr.Length,
			})
		}
		for _, er := range rb.EntityRanges {
			if _, ok := d.Entities[er.Key]; !ok {
				return nil, fmt.Errorf("%w: block %d references missing entity %d", domain.ErrMalformedDocument, i, er.Key)
			}
			b.EntityRanges = append(b.EntityRanges, domain.EntityRange(er))
		}
		d.Blocks = append(d.Blocks, b)
	}

	d.SeedEntityCounter()
	return d, nil
}

// newBlockKey returns a short opaque block key.
func newBlockKey() string {
	return uuid.NewString()[:8]
}
