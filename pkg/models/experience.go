package models

import (
	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/lib/pq"
)

// Experience is a bookable guest experience (tasting, class, tour).
type Experience struct {
	Envelope
	Title           string                         `db:"title" json:"title" validate:"required"`
	Slug            string                         `db:"slug" json:"slug" validate:"required"`
	Description     string                         `db:"description" json:"description"`
	Category        string                         `db:"category" json:"category"`
	DurationMinutes int                            `db:"duration_minutes" json:"duration_minutes"`
	Price           float64                        `db:"price" json:"price"`
	MaxGuests       int                            `db:"max_guests" json:"max_guests"`
	Schedule        database.JSONB[map[string]any] `db:"schedule" json:"schedule"`
	Images          pq.StringArray                 `db:"images" json:"images"`
	IsActive        bool                           `db:"is_active" json:"is_active"`
}

var ExperienceDescriptor = Descriptor[Experience]{
	Entity:          "experience",
	Table:           "experiences",
	ActiveField:     "is_active",
	AttachmentField: "images",
	DefaultSort:     Sort{Key: "display_order"},
	Defaults: func() Experience {
		return Experience{
			IsActive: true,
			Images:   pq.StringArray{},
		}
	},
	Meta: func(e *Experience) *Envelope { return &e.Envelope },
	Fields: []FieldSpec[Experience]{
		{Name: "title", Kind: FieldString, Required: true, Searchable: true,
			Get: func(e *Experience) any { return e.Title },
			Set: func(e *Experience, v any) { e.Title, _ = v.(string) }},
		{Name: "slug", Kind: FieldString, Required: true, Searchable: true,
			Get: func(e *Experience) any { return e.Slug },
			Set: func(e *Experience, v any) { e.Slug, _ = v.(string) }},
		{Name: "description", Kind: FieldString, Searchable: true,
			Get: func(e *Experience) any { return e.Description },
			Set: func(e *Experience, v any) { e.Description, _ = v.(string) }},
		{Name: "category", Kind: FieldString, Searchable: true,
			Get: func(e *Experience) any { return e.Category },
			Set: func(e *Experience, v any) { e.Category, _ = v.(string) }},
		{Name: "duration_minutes", Kind: FieldInt,
			Get: func(e *Experience) any { return e.DurationMinutes },
			Set: func(e *Experience, v any) { e.DurationMinutes, _ = v.(int) }},
		{Name: "price", Kind: FieldFloat,
			Get: func(e *Experience) any { return e.Price },
			Set: func(e *Experience, v any) { e.Price, _ = v.(float64) }},
		{Name: "max_guests", Kind: FieldInt,
			Get: func(e *Experience) any { return e.MaxGuests },
			Set: func(e *Experience, v any) { e.MaxGuests, _ = v.(int) }},
		{Name: "schedule", Kind: FieldJSON,
			Get: func(e *Experience) any { return e.Schedule.Data },
			Set: func(e *Experience, v any) { m, _ := v.(map[string]any); e.Schedule.Data = m }},
		{Name: "images", Kind: FieldStringArray,
			Get: func(e *Experience) any { return []string(e.Images) },
			Set: func(e *Experience, v any) { a, _ := v.([]string); e.Images = pq.StringArray(a) }},
		{Name: "is_active", Kind: FieldBool,
			Get: func(e *Experience) any { return e.IsActive },
			Set: func(e *Experience, v any) { e.IsActive, _ = v.(bool) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(e *Experience) any { return e.DisplayOrder },
			Set: func(e *Experience, v any) { e.DisplayOrder, _ = v.(int) }},
	},
}
