package models

import (
	"time"

	"github.com/lib/pq"
)

// DocumentSigning tracks an e-signature flow for a lease or investment
// document. property_name is an informal display-only reference.
type DocumentSigning struct {
	Envelope
	DocumentName string         `db:"document_name" json:"document_name" validate:"required"`
	PropertyName string         `db:"property_name" json:"property_name"`
	SignerName   string         `db:"signer_name" json:"signer_name" validate:"required"`
	SignerEmail  string         `db:"signer_email" json:"signer_email" validate:"required,email"`
	Status       string         `db:"status" json:"status"`
	SignedAt     *time.Time     `db:"signed_at" json:"signed_at,omitempty"`
	Files        pq.StringArray `db:"files" json:"files"`
}

var DocumentSigningDescriptor = Descriptor[DocumentSigning]{
	Entity:          "document_signing",
	Table:           "document_signings",
	AttachmentField: "files",
	DefaultSort:     Sort{Key: "created_at", Desc: true},
	Defaults: func() DocumentSigning {
		return DocumentSigning{
			Status: "sent",
			Files:  pq.StringArray{},
		}
	},
	Meta: func(d *DocumentSigning) *Envelope { return &d.Envelope },
	Fields: []FieldSpec[DocumentSigning]{
		{Name: "document_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(d *DocumentSigning) any { return d.DocumentName },
			Set: func(d *DocumentSigning, v any) { d.DocumentName, _ = v.(string) }},
		{Name: "property_name", Kind: FieldString, Searchable: true,
			Get: func(d *DocumentSigning) any { return d.PropertyName },
			Set: func(d *DocumentSigning, v any) { d.PropertyName, _ = v.(string) }},
		{Name: "signer_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(d *DocumentSigning) any { return d.SignerName },
			Set: func(d *DocumentSigning, v any) { d.SignerName, _ = v.(string) }},
		{Name: "signer_email", Kind: FieldString, Required: true,
			Get: func(d *DocumentSigning) any { return d.SignerEmail },
			Set: func(d *DocumentSigning, v any) { d.SignerEmail, _ = v.(string) }},
		{Name: "status", Kind: FieldString,
			Get: func(d *DocumentSigning) any { return d.Status },
			Set: func(d *DocumentSigning, v any) { d.Status, _ = v.(string) }},
		{Name: "signed_at", Kind: FieldTime,
			Get: func(d *DocumentSigning) any {
				if d.SignedAt == nil {
					return time.Time{}
				}
				return *d.SignedAt
			},
			Set: func(d *DocumentSigning, v any) {
				t, _ := v.(time.Time)
				if t.IsZero() {
					d.SignedAt = nil
					return
				}
				d.SignedAt = &t
			}},
		{Name: "files", Kind: FieldStringArray,
			Get: func(d *DocumentSigning) any { return []string(d.Files) },
			Set: func(d *DocumentSigning, v any) { a, _ := v.([]string); d.Files = pq.StringArray(a) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(d *DocumentSigning) any { return d.DisplayOrder },
			Set: func(d *DocumentSigning, v any) { d.DisplayOrder, _ = v.(int) }},
	},
}
