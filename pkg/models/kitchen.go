package models

import (
	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/lib/pq"
)

// Kitchen is a rentable kitchen unit in a food hall.
type Kitchen struct {
	Envelope
	Name         string                             `db:"name" json:"name" validate:"required"`
	Slug         string                             `db:"slug" json:"slug" validate:"required"`
	Description  string                             `db:"description" json:"description"`
	Cuisine      string                             `db:"cuisine" json:"cuisine"`
	Capacity     int                                `db:"capacity" json:"capacity"`
	PriceRange   string                             `db:"price_range" json:"price_range"`
	Amenities    pq.StringArray                     `db:"amenities" json:"amenities"`
	Images       pq.StringArray                     `db:"images" json:"images"`
	OpeningHours database.JSONB[map[string]any]     `db:"opening_hours" json:"opening_hours"`
	IsAvailable  bool                               `db:"is_available" json:"is_available"`
}

// KitchenDescriptor configures the generic repository/list/form layers for
// kitchens. Search covers name, slug and description; images is the
// attachment column.
var KitchenDescriptor = Descriptor[Kitchen]{
	Entity:          "kitchen",
	Table:           "kitchens",
	ActiveField:     "is_available",
	AttachmentField: "images",
	DefaultSort:     Sort{Key: "display_order"},
	Defaults: func() Kitchen {
		return Kitchen{
			IsAvailable: true,
			Amenities:   pq.StringArray{},
			Images:      pq.StringArray{},
		}
	},
	Meta: func(k *Kitchen) *Envelope { return &k.Envelope },
	Fields: []FieldSpec[Kitchen]{
		{Name: "name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(k *Kitchen) any { return k.Name },
			Set: func(k *Kitchen, v any) { k.Name, _ = v.(string) }},
		{Name: "slug", Kind: FieldString, Required: true, Searchable: true,
			Get: func(k *Kitchen) any { return k.Slug },
			Set: func(k *Kitchen, v any) { k.Slug, _ = v.(string) }},
		{Name: "description", Kind: FieldString, Searchable: true,
			Get: func(k *Kitchen) any { return k.Description },
			Set: func(k *Kitchen, v any) { k.Description, _ = v.(string) }},
		{Name: "cuisine", Kind: FieldString, Searchable: true,
			Get: func(k *Kitchen) any { return k.Cuisine },
			Set: func(k *Kitchen, v any) { k.Cuisine, _ = v.(string) }},
		{Name: "capacity", Kind: FieldInt,
			Get: func(k *Kitchen) any { return k.Capacity },
			Set: func(k *Kitchen, v any) { k.Capacity, _ = v.(int) }},
		{Name: "price_range", Kind: FieldString,
			Get: func(k *Kitchen) any { return k.PriceRange },
			Set: func(k *Kitchen, v any) { k.PriceRange, _ = v.(string) }},
		{Name: "amenities", Kind: FieldStringArray,
			Get: func(k *Kitchen) any { return []string(k.Amenities) },
			Set: func(k *Kitchen, v any) { s, _ := v.([]string); k.Amenities = pq.StringArray(s) }},
		{Name: "images", Kind: FieldStringArray,
			Get: func(k *Kitchen) any { return []string(k.Images) },
			Set: func(k *Kitchen, v any) { s, _ := v.([]string); k.Images = pq.StringArray(s) }},
		{Name: "opening_hours", Kind: FieldJSON,
			Get: func(k *Kitchen) any { return k.OpeningHours.Data },
			Set: func(k *Kitchen, v any) { m, _ := v.(map[string]any); k.OpeningHours.Data = m }},
		{Name: "is_available", Kind: FieldBool,
			Get: func(k *Kitchen) any { return k.IsAvailable },
			Set: func(k *Kitchen, v any) { k.IsAvailable, _ = v.(bool) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(k *Kitchen) any { return k.DisplayOrder },
			Set: func(k *Kitchen, v any) { k.DisplayOrder, _ = v.(int) }},
	},
}
