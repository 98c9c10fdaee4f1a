package models

import (
	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/lib/pq"
)

// Space is a bookable event or retail space within a property.
type Space struct {
	Envelope
	Name         string                         `db:"name" json:"name" validate:"required"`
	Slug         string                         `db:"slug" json:"slug" validate:"required"`
	Description  string                         `db:"description" json:"description"`
	Floor        int                            `db:"floor" json:"floor"`
	AreaSqm      float64                        `db:"area_sqm" json:"area_sqm"`
	Capacity     int                            `db:"capacity" json:"capacity"`
	PricePerHour float64                        `db:"price_per_hour" json:"price_per_hour"`
	Amenities    pq.StringArray                 `db:"amenities" json:"amenities"`
	Images       pq.StringArray                 `db:"images" json:"images"`
	Metadata     database.JSONB[map[string]any] `db:"metadata" json:"metadata"`
	IsAvailable  bool                           `db:"is_available" json:"is_available"`
}

var SpaceDescriptor = Descriptor[Space]{
	Entity:          "space",
	Table:           "spaces",
	ActiveField:     "is_available",
	AttachmentField: "images",
	DefaultSort:     Sort{Key: "display_order"},
	Defaults: func() Space {
		return Space{
			IsAvailable: true,
			Amenities:   pq.StringArray{},
			Images:      pq.StringArray{},
		}
	},
	Meta: func(s *Space) *Envelope { return &s.Envelope },
	Fields: []FieldSpec[Space]{
		{Name: "name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(s *Space) any { return s.Name },
			Set: func(s *Space, v any) { s.Name, _ = v.(string) }},
		{Name: "slug", Kind: FieldString, Required: true, Searchable: true,
			Get: func(s *Space) any { return s.Slug },
			Set: func(s *Space, v any) { s.Slug, _ = v.(string) }},
		{Name: "description", Kind: FieldString, Searchable: true,
			Get: func(s *Space) any { return s.Description },
			Set: func(s *Space, v any) { s.Description, _ = v.(string) }},
		{Name: "floor", Kind: FieldInt,
			Get: func(s *Space) any { return s.Floor },
			Set: func(s *Space, v any) { s.Floor, _ = v.(int) }},
		{Name: "area_sqm", Kind: FieldFloat,
			Get: func(s *Space) any { return s.AreaSqm },
			Set: func(s *Space, v any) { s.AreaSqm, _ = v.(float64) }},
		{Name: "capacity", Kind: FieldInt,
			Get: func(s *Space) any { return s.Capacity },
			Set: func(s *Space, v any) { s.Capacity, _ = v.(int) }},
		{Name: "price_per_hour", Kind: FieldFloat,
			Get: func(s *Space) any { return s.PricePerHour },
			Set: func(s *Space, v any) { s.PricePerHour, _ = v.(float64) }},
		{Name: "amenities", Kind: FieldStringArray,
			Get: func(s *Space) any { return []string(s.Amenities) },
			Set: func(s *Space, v any) { a, _ := v.([]string); s.Amenities = pq.StringArray(a) }},
		{Name: "images", Kind: FieldStringArray,
			Get: func(s *Space) any { return []string(s.Images) },
			Set: func(s *Space, v any) { a, _ := v.([]string); s.Images = pq.StringArray(a) }},
		{Name: "metadata", Kind: FieldJSON,
			Get: func(s *Space) any { return s.Metadata.Data },
			Set: func(s *Space, v any) { m, _ := v.(map[string]any); s.Metadata.Data = m }},
		{Name: "is_available", Kind: FieldBool,
			Get: func(s *Space) any { return s.IsAvailable },
			Set: func(s *Space, v any) { s.IsAvailable, _ = v.(bool) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(s *Space) any { return s.DisplayOrder },
			Set: func(s *Space, v any) { s.DisplayOrder, _ = v.(int) }},
	},
}
