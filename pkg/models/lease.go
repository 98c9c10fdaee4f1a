package models

import (
	"time"

	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/lib/pq"
)

// Lease is a rental agreement between the operator and a tenant.
type Lease struct {
	Envelope
	TenantName    string                         `db:"tenant_name" json:"tenant_name" validate:"required"`
	UnitName      string                         `db:"unit_name" json:"unit_name" validate:"required"`
	StartDate     time.Time                      `db:"start_date" json:"start_date" validate:"required"`
	EndDate       time.Time                      `db:"end_date" json:"end_date"`
	MonthlyRent   float64                        `db:"monthly_rent" json:"monthly_rent"`
	DepositAmount float64                        `db:"deposit_amount" json:"deposit_amount"`
	Status        string                         `db:"status" json:"status"`
	Terms         database.JSONB[map[string]any] `db:"terms" json:"terms"`
	Documents     pq.StringArray                 `db:"documents" json:"documents"`
	IsActive      bool                           `db:"is_active" json:"is_active"`
}

var LeaseDescriptor = Descriptor[Lease]{
	Entity:          "lease",
	Table:           "leases",
	ActiveField:     "is_active",
	AttachmentField: "documents",
	DefaultSort:     Sort{Key: "start_date", Desc: true},
	Defaults: func() Lease {
		return Lease{
			IsActive:  true,
			Status:    "draft",
			Documents: pq.StringArray{},
		}
	},
	Meta: func(l *Lease) *Envelope { return &l.Envelope },
	Fields: []FieldSpec[Lease]{
		{Name: "tenant_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(l *Lease) any { return l.TenantName },
			Set: func(l *Lease, v any) { l.TenantName, _ = v.(string) }},
		{Name: "unit_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(l *Lease) any { return l.UnitName },
			Set: func(l *Lease, v any) { l.UnitName, _ = v.(string) }},
		{Name: "start_date", Kind: FieldTime, Required: true,
			Get: func(l *Lease) any { return l.StartDate },
			Set: func(l *Lease, v any) { l.StartDate, _ = v.(time.Time) }},
		{Name: "end_date", Kind: FieldTime,
			Get: func(l *Lease) any { return l.EndDate },
			Set: func(l *Lease, v any) { l.EndDate, _ = v.(time.Time) }},
		{Name: "monthly_rent", Kind: FieldFloat,
			Get: func(l *Lease) any { return l.MonthlyRent },
			Set: func(l *Lease, v any) { l.MonthlyRent, _ = v.(float64) }},
		{Name: "deposit_amount", Kind: FieldFloat,
			Get: func(l *Lease) any { return l.DepositAmount },
			Set: func(l *Lease, v any) { l.DepositAmount, _ = v.(float64) }},
		{Name: "status", Kind: FieldString,
			Get: func(l *Lease) any { return l.Status },
			Set: func(l *Lease, v any) { l.Status, _ = v.(string) }},
		{Name: "terms", Kind: FieldJSON,
			Get: func(l *Lease) any { return l.Terms.Data },
			Set: func(l *Lease, v any) { m, _ := v.(map[string]any); l.Terms.Data = m }},
		{Name: "documents", Kind: FieldStringArray,
			Get: func(l *Lease) any { return []string(l.Documents) },
			Set: func(l *Lease, v any) { a, _ := v.([]string); l.Documents = pq.StringArray(a) }},
		{Name: "is_active", Kind: FieldBool,
			Get: func(l *Lease) any { return l.IsActive },
			Set: func(l *Lease, v any) { l.IsActive, _ = v.(bool) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(l *Lease) any { return l.DisplayOrder },
			Set: func(l *Lease, v any) { l.DisplayOrder, _ = v.(int) }},
	},
}
