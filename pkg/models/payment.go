package models

import (
	"time"

	"github.com/lib/pq"
)

// Payment is a rent or deposit payment. lease_ref points at a lease
// informally (display-only join, never enforced).
type Payment struct {
	Envelope
	LeaseRef string         `db:"lease_ref" json:"lease_ref" validate:"required"`
	Amount   float64        `db:"amount" json:"amount" validate:"required"`
	Currency string         `db:"currency" json:"currency"`
	DueDate  time.Time      `db:"due_date" json:"due_date"`
	PaidAt   *time.Time     `db:"paid_at" json:"paid_at,omitempty"`
	Method   string         `db:"method" json:"method"`
	Status   string         `db:"status" json:"status"`
	Receipts pq.StringArray `db:"receipts" json:"receipts"`
}

var PaymentDescriptor = Descriptor[Payment]{
	Entity:          "payment",
	Table:           "payments",
	AttachmentField: "receipts",
	DefaultSort:     Sort{Key: "due_date", Desc: true},
	Defaults: func() Payment {
		return Payment{
			Currency: "EUR",
			Status:   "pending",
			Receipts: pq.StringArray{},
		}
	},
	Meta: func(p *Payment) *Envelope { return &p.Envelope },
	Fields: []FieldSpec[Payment]{
		{Name: "lease_ref", Kind: FieldString, Required: true, Searchable: true,
			Get: func(p *Payment) any { return p.LeaseRef },
			Set: func(p *Payment, v any) { p.LeaseRef, _ = v.(string) }},
		{Name: "amount", Kind: FieldFloat,
			Get: func(p *Payment) any { return p.Amount },
			Set: func(p *Payment, v any) { p.Amount, _ = v.(float64) }},
		{Name: "currency", Kind: FieldString,
			Get: func(p *Payment) any { return p.Currency },
			Set: func(p *Payment, v any) { p.Currency, _ = v.(string) }},
		{Name: "due_date", Kind: FieldTime,
			Get: func(p *Payment) any { return p.DueDate },
			Set: func(p *Payment, v any) { p.DueDate, _ = v.(time.Time) }},
		{Name: "paid_at", Kind: FieldTime,
			Get: func(p *Payment) any {
				if p.PaidAt == nil {
					return time.Time{}
				}
				return *p.PaidAt
			},
			Set: func(p *Payment, v any) {
				t, _ := v.(time.Time)
				if t.IsZero() {
					p.PaidAt = nil
					return
				}
				p.PaidAt = &t
			}},
		{Name: "method", Kind: FieldString,
			Get: func(p *Payment) any { return p.Method },
			Set: func(p *Payment, v any) { p.Method, _ = v.(string) }},
		{Name: "status", Kind: FieldString, Searchable: true,
			Get: func(p *Payment) any { return p.Status },
			Set: func(p *Payment, v any) { p.Status, _ = v.(string) }},
		{Name: "receipts", Kind: FieldStringArray,
			Get: func(p *Payment) any { return []string(p.Receipts) },
			Set: func(p *Payment, v any) { a, _ := v.([]string); p.Receipts = pq.StringArray(a) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(p *Payment) any { return p.DisplayOrder },
			Set: func(p *Payment, v any) { p.DisplayOrder, _ = v.(int) }},
	},
}
