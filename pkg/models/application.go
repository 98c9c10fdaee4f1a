package models

import "github.com/lib/pq"

// Application is a prospective tenant's application for a kitchen or space.
// target_type/target_name reference the desired unit informally; no
// referential integrity is enforced.
type Application struct {
	Envelope
	ApplicantName string         `db:"applicant_name" json:"applicant_name" validate:"required"`
	Email         string         `db:"email" json:"email" validate:"required,email"`
	Phone         string         `db:"phone" json:"phone"`
	TargetType    string         `db:"target_type" json:"target_type"`
	TargetName    string         `db:"target_name" json:"target_name"`
	Status        string         `db:"status" json:"status"`
	Message       string         `db:"message" json:"message"`
	Requirements  pq.StringArray `db:"requirements" json:"requirements"`
	Attachments   pq.StringArray `db:"attachments" json:"attachments"`
}

var ApplicationDescriptor = Descriptor[Application]{
	Entity:          "application",
	Table:           "applications",
	AttachmentField: "attachments",
	DefaultSort:     Sort{Key: "created_at", Desc: true},
	Defaults: func() Application {
		return Application{
			Status:       "submitted",
			Requirements: pq.StringArray{},
			Attachments:  pq.StringArray{},
		}
	},
	Meta: func(a *Application) *Envelope { return &a.Envelope },
	Fields: []FieldSpec[Application]{
		{Name: "applicant_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(a *Application) any { return a.ApplicantName },
			Set: func(a *Application, v any) { a.ApplicantName, _ = v.(string) }},
		{Name: "email", Kind: FieldString, Required: true, Searchable: true,
			Get: func(a *Application) any { return a.Email },
			Set: func(a *Application, v any) { a.Email, _ = v.(string) }},
		{Name: "phone", Kind: FieldString,
			Get: func(a *Application) any { return a.Phone },
			Set: func(a *Application, v any) { a.Phone, _ = v.(string) }},
		{Name: "target_type", Kind: FieldString,
			Get: func(a *Application) any { return a.TargetType },
			Set: func(a *Application, v any) { a.TargetType, _ = v.(string) }},
		{Name: "target_name", Kind: FieldString, Searchable: true,
			Get: func(a *Application) any { return a.TargetName },
			Set: func(a *Application, v any) { a.TargetName, _ = v.(string) }},
		{Name: "status", Kind: FieldString,
			Get: func(a *Application) any { return a.Status },
			Set: func(a *Application, v any) { a.Status, _ = v.(string) }},
		{Name: "message", Kind: FieldString, Searchable: true,
			Get: func(a *Application) any { return a.Message },
			Set: func(a *Application, v any) { a.Message, _ = v.(string) }},
		{Name: "requirements", Kind: FieldStringArray,
			Get: func(a *Application) any { return []string(a.Requirements) },
			Set: func(a *Application, v any) { s, _ := v.([]string); a.Requirements = pq.StringArray(s) }},
		{Name: "attachments", Kind: FieldStringArray,
			Get: func(a *Application) any { return []string(a.Attachments) },
			Set: func(a *Application, v any) { s, _ := v.([]string); a.Attachments = pq.StringArray(s) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(a *Application) any { return a.DisplayOrder },
			Set: func(a *Application, v any) { a.DisplayOrder, _ = v.(int) }},
	},
}
