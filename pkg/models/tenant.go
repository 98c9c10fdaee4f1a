package models

import (
	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/lib/pq"
)

// Tenant is a commercial tenant renting a kitchen or space (not to be
// confused with the operator org that scopes every request).
type Tenant struct {
	Envelope
	BusinessName string                         `db:"business_name" json:"business_name" validate:"required"`
	ContactName  string                         `db:"contact_name" json:"contact_name" validate:"required"`
	Email        string                         `db:"email" json:"email" validate:"required,email"`
	Phone        string                         `db:"phone" json:"phone"`
	Category     string                         `db:"category" json:"category"`
	Website      string                         `db:"website" json:"website"`
	SocialMedia  database.JSONB[map[string]any] `db:"social_media" json:"social_media"`
	Documents    pq.StringArray                 `db:"documents" json:"documents"`
	IsActive     bool                           `db:"is_active" json:"is_active"`
}

var TenantDescriptor = Descriptor[Tenant]{
	Entity:          "tenant",
	Table:           "tenants",
	ActiveField:     "is_active",
	AttachmentField: "documents",
	DefaultSort:     Sort{Key: "business_name"},
	Defaults: func() Tenant {
		return Tenant{
			IsActive:  true,
			Documents: pq.StringArray{},
		}
	},
	Meta: func(t *Tenant) *Envelope { return &t.Envelope },
	Fields: []FieldSpec[Tenant]{
		{Name: "business_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(t *Tenant) any { return t.BusinessName },
			Set: func(t *Tenant, v any) { t.BusinessName, _ = v.(string) }},
		{Name: "contact_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(t *Tenant) any { return t.ContactName },
			Set: func(t *Tenant, v any) { t.ContactName, _ = v.(string) }},
		{Name: "email", Kind: FieldString, Required: true, Searchable: true,
			Get: func(t *Tenant) any { return t.Email },
			Set: func(t *Tenant, v any) { t.Email, _ = v.(string) }},
		{Name: "phone", Kind: FieldString,
			Get: func(t *Tenant) any { return t.Phone },
			Set: func(t *Tenant, v any) { t.Phone, _ = v.(string) }},
		{Name: "category", Kind: FieldString, Searchable: true,
			Get: func(t *Tenant) any { return t.Category },
			Set: func(t *Tenant, v any) { t.Category, _ = v.(string) }},
		{Name: "website", Kind: FieldString,
			Get: func(t *Tenant) any { return t.Website },
			Set: func(t *Tenant, v any) { t.Website, _ = v.(string) }},
		{Name: "social_media", Kind: FieldJSON,
			Get: func(t *Tenant) any { return t.SocialMedia.Data },
			Set: func(t *Tenant, v any) { m, _ := v.(map[string]any); t.SocialMedia.Data = m }},
		{Name: "documents", Kind: FieldStringArray,
			Get: func(t *Tenant) any { return []string(t.Documents) },
			Set: func(t *Tenant, v any) { a, _ := v.([]string); t.Documents = pq.StringArray(a) }},
		{Name: "is_active", Kind: FieldBool,
			Get: func(t *Tenant) any { return t.IsActive },
			Set: func(t *Tenant, v any) { t.IsActive, _ = v.(bool) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(t *Tenant) any { return t.DisplayOrder },
			Set: func(t *Tenant, v any) { t.DisplayOrder, _ = v.(int) }},
	},
}
