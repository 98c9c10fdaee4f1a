package models

import (
	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/lib/pq"
)

// ContentBlock is a CMS fragment rendered on the public site (hero copy,
// section text, media strips). The section field groups blocks per page area.
type ContentBlock struct {
	Envelope
	Title    string                         `db:"title" json:"title" validate:"required"`
	Slug     string                         `db:"slug" json:"slug" validate:"required"`
	Section  string                         `db:"section" json:"section" validate:"required"`
	Body     string                         `db:"body" json:"body"`
	Locale   string                         `db:"locale" json:"locale"`
	Media    pq.StringArray                 `db:"media" json:"media"`
	Metadata database.JSONB[map[string]any] `db:"metadata" json:"metadata"`
	IsActive bool                           `db:"is_active" json:"is_active"`
}

var ContentBlockDescriptor = Descriptor[ContentBlock]{
	Entity:          "content_block",
	Table:           "content_blocks",
	ActiveField:     "is_active",
	AttachmentField: "media",
	DefaultSort:     Sort{Key: "display_order"},
	Defaults: func() ContentBlock {
		return ContentBlock{
			IsActive: true,
			Locale:   "en",
			Media:    pq.StringArray{},
		}
	},
	Meta: func(b *ContentBlock) *Envelope { return &b.Envelope },
	Fields: []FieldSpec[ContentBlock]{
		{Name: "title", Kind: FieldString, Required: true, Searchable: true,
			Get: func(b *ContentBlock) any { return b.Title },
			Set: func(b *ContentBlock, v any) { b.Title, _ = v.(string) }},
		{Name: "slug", Kind: FieldString, Required: true, Searchable: true,
			Get: func(b *ContentBlock) any { return b.Slug },
			Set: func(b *ContentBlock, v any) { b.Slug, _ = v.(string) }},
		{Name: "section", Kind: FieldString, Required: true,
			Get: func(b *ContentBlock) any { return b.Section },
			Set: func(b *ContentBlock, v any) { b.Section, _ = v.(string) }},
		{Name: "body", Kind: FieldString, Searchable: true,
			Get: func(b *ContentBlock) any { return b.Body },
			Set: func(b *ContentBlock, v any) { b.Body, _ = v.(string) }},
		{Name: "locale", Kind: FieldString,
			Get: func(b *ContentBlock) any { return b.Locale },
			Set: func(b *ContentBlock, v any) { b.Locale, _ = v.(string) }},
		{Name: "media", Kind: FieldStringArray,
			Get: func(b *ContentBlock) any { return []string(b.Media) },
			Set: func(b *ContentBlock, v any) { a, _ := v.([]string); b.Media = pq.StringArray(a) }},
		{Name: "metadata", Kind: FieldJSON,
			Get: func(b *ContentBlock) any { return b.Metadata.Data },
			Set: func(b *ContentBlock, v any) { m, _ := v.(map[string]any); b.Metadata.Data = m }},
		{Name: "is_active", Kind: FieldBool,
			Get: func(b *ContentBlock) any { return b.IsActive },
			Set: func(b *ContentBlock, v any) { b.IsActive, _ = v.(bool) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(b *ContentBlock) any { return b.DisplayOrder },
			Set: func(b *ContentBlock, v any) { b.DisplayOrder, _ = v.(int) }},
	},
}
