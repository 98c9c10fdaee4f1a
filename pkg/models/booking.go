package models

import "time"

// Booking reserves a space for a time window. space_ref is an informal
// reference to a space by slug; overlap protection happens at creation time
// via a short-lived slot lock, not a database constraint.
type Booking struct {
	Envelope
	SpaceRef     string    `db:"space_ref" json:"space_ref" validate:"required"`
	CustomerName string    `db:"customer_name" json:"customer_name" validate:"required"`
	Email        string    `db:"email" json:"email" validate:"required,email"`
	StartsAt     time.Time `db:"starts_at" json:"starts_at" validate:"required"`
	EndsAt       time.Time `db:"ends_at" json:"ends_at" validate:"required"`
	GuestCount   int       `db:"guest_count" json:"guest_count"`
	Status       string    `db:"status" json:"status"`
	Notes        string    `db:"notes" json:"notes"`
}

var BookingDescriptor = Descriptor[Booking]{
	Entity:      "booking",
	Table:       "bookings",
	DefaultSort: Sort{Key: "starts_at", Desc: true},
	Defaults: func() Booking {
		return Booking{
			Status: "requested",
		}
	},
	Meta: func(b *Booking) *Envelope { return &b.Envelope },
	Fields: []FieldSpec[Booking]{
		{Name: "space_ref", Kind: FieldString, Required: true, Searchable: true,
			Get: func(b *Booking) any { return b.SpaceRef },
			Set: func(b *Booking, v any) { b.SpaceRef, _ = v.(string) }},
		{Name: "customer_name", Kind: FieldString, Required: true, Searchable: true,
			Get: func(b *Booking) any { return b.CustomerName },
			Set: func(b *Booking, v any) { b.CustomerName, _ = v.(string) }},
		{Name: "email", Kind: FieldString, Required: true, Searchable: true,
			Get: func(b *Booking) any { return b.Email },
			Set: func(b *Booking, v any) { b.Email, _ = v.(string) }},
		{Name: "starts_at", Kind: FieldTime, Required: true,
			Get: func(b *Booking) any { return b.StartsAt },
			Set: func(b *Booking, v any) { b.StartsAt, _ = v.(time.Time) }},
		{Name: "ends_at", Kind: FieldTime, Required: true,
			Get: func(b *Booking) any { return b.EndsAt },
			Set: func(b *Booking, v any) { b.EndsAt, _ = v.(time.Time) }},
		{Name: "guest_count", Kind: FieldInt,
			Get: func(b *Booking) any { return b.GuestCount },
			Set: func(b *Booking, v any) { b.GuestCount, _ = v.(int) }},
		{Name: "status", Kind: FieldString,
			Get: func(b *Booking) any { return b.Status },
			Set: func(b *Booking, v any) { b.Status, _ = v.(string) }},
		{Name: "notes", Kind: FieldString, Searchable: true,
			Get: func(b *Booking) any { return b.Notes },
			Set: func(b *Booking, v any) { b.Notes, _ = v.(string) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(b *Booking) any { return b.DisplayOrder },
			Set: func(b *Booking, v any) { b.DisplayOrder, _ = v.(int) }},
	},
}
