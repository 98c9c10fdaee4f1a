package models

import "github.com/lib/pq"

// Commitment statuses follow the investor funnel; there is no boolean
// visibility flag, so the dashboard reports no active count for this family.
const (
	CommitmentStatusPledged   = "pledged"
	CommitmentStatusKYC       = "kyc_review"
	CommitmentStatusSigned    = "signed"
	CommitmentStatusFunded    = "funded"
	CommitmentStatusWithdrawn = "withdrawn"
)

// Commitment is an investor's investment commitment.
type Commitment struct {
	Envelope
	InvestorName string         `db:"investor_name" json:"investor_name" validate:"required"`
	Email        string         `db:"email" json:"email" validate:"required,email"`
	Amount       float64        `db:"amount" json:"amount" validate:"required"`
	Currency     string         `db:"currency" json:"currency"`
	Status       string         `db:"status" json:"status"`
	Notes        string         `db:"notes" json:"notes"`
	Documents    pq.StringArray `db:"documents" json:"documents"`
}

var CommitmentDescriptor = Descriptor[Commitment]{
	Entity:          "commitment",
	Table:           "commitments",
	AttachmentField: "documents",
	DefaultSort:     Sort{Key: "created_at", Desc: true},
	Defaults: func() Commitment {
		return Commitment{
			Currency:  "EUR",
			Status:    CommitmentStatusPledged,
			Documents: pq.StringArray{},
		}
	},
	Meta: func(c *Commitment) *Envelope { return &c.Envelope },
	Fields: []FieldSpec[Commitment]{
		{Name: "investor_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(c *Commitment) any { return c.InvestorName },
			Set: func(c *Commitment, v any) { c.InvestorName, _ = v.(string) }},
		{Name: "email", Kind: FieldString, Required: true, Searchable: true,
			Get: func(c *Commitment) any { return c.Email },
			Set: func(c *Commitment, v any) { c.Email, _ = v.(string) }},
		{Name: "amount", Kind: FieldFloat,
			Get: func(c *Commitment) any { return c.Amount },
			Set: func(c *Commitment, v any) { c.Amount, _ = v.(float64) }},
		{Name: "currency", Kind: FieldString,
			Get: func(c *Commitment) any { return c.Currency },
			Set: func(c *Commitment, v any) { c.Currency, _ = v.(string) }},
		{Name: "status", Kind: FieldString,
			Get: func(c *Commitment) any { return c.Status },
			Set: func(c *Commitment, v any) { c.Status, _ = v.(string) }},
		{Name: "notes", Kind: FieldString, Searchable: true,
			Get: func(c *Commitment) any { return c.Notes },
			Set: func(c *Commitment, v any) { c.Notes, _ = v.(string) }},
		{Name: "documents", Kind: FieldStringArray,
			Get: func(c *Commitment) any { return []string(c.Documents) },
			Set: func(c *Commitment, v any) { a, _ := v.([]string); c.Documents = pq.StringArray(a) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(c *Commitment) any { return c.DisplayOrder },
			Set: func(c *Commitment, v any) { c.DisplayOrder, _ = v.(int) }},
	},
}
