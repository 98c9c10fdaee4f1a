package models

import "github.com/lib/pq"

const (
	MaintenancePriorityLow    = "low"
	MaintenancePriorityMedium = "medium"
	MaintenancePriorityHigh   = "high"
	MaintenancePriorityUrgent = "urgent"
)

// MaintenanceRequest is a tenant-reported maintenance issue. Lifecycle is
// status-driven (open -> in_progress -> resolved), no visibility flag.
type MaintenanceRequest struct {
	Envelope
	Title       string         `db:"title" json:"title" validate:"required"`
	Description string         `db:"description" json:"description" validate:"required"`
	Location    string         `db:"location" json:"location"`
	Priority    string         `db:"priority" json:"priority"`
	Status      string         `db:"status" json:"status"`
	ReportedBy  string         `db:"reported_by" json:"reported_by"`
	AssignedTo  string         `db:"assigned_to" json:"assigned_to"`
	Photos      pq.StringArray `db:"photos" json:"photos"`
}

var MaintenanceRequestDescriptor = Descriptor[MaintenanceRequest]{
	Entity:          "maintenance_request",
	Table:           "maintenance_requests",
	AttachmentField: "photos",
	DefaultSort:     Sort{Key: "created_at", Desc: true},
	Defaults: func() MaintenanceRequest {
		return MaintenanceRequest{
			Priority: MaintenancePriorityMedium,
			Status:   "open",
			Photos:   pq.StringArray{},
		}
	},
	Meta: func(m *MaintenanceRequest) *Envelope { return &m.Envelope },
	Fields: []FieldSpec[MaintenanceRequest]{
		{Name: "title", Kind: FieldString, Required: true, Searchable: true,
			Get: func(m *MaintenanceRequest) any { return m.Title },
			Set: func(m *MaintenanceRequest, v any) { m.Title, _ = v.(string) }},
		{Name: "description", Kind: FieldString, Required: true, Searchable: true,
			Get: func(m *MaintenanceRequest) any { return m.Description },
			Set: func(m *MaintenanceRequest, v any) { m.Description, _ = v.(string) }},
		{Name: "location", Kind: FieldString, Searchable: true,
			Get: func(m *MaintenanceRequest) any { return m.Location },
			Set: func(m *MaintenanceRequest, v any) { m.Location, _ = v.(string) }},
		{Name: "priority", Kind: FieldString,
			Get: func(m *MaintenanceRequest) any { return m.Priority },
			Set: func(m *MaintenanceRequest, v any) { m.Priority, _ = v.(string) }},
		{Name: "status", Kind: FieldString,
			Get: func(m *MaintenanceRequest) any { return m.Status },
			Set: func(m *MaintenanceRequest, v any) { m.Status, _ = v.(string) }},
		{Name: "reported_by", Kind: FieldString,
			Get: func(m *MaintenanceRequest) any { return m.ReportedBy },
			Set: func(m *MaintenanceRequest, v any) { m.ReportedBy, _ = v.(string) }},
		{Name: "assigned_to", Kind: FieldString,
			Get: func(m *MaintenanceRequest) any { return m.AssignedTo },
			Set: func(m *MaintenanceRequest, v any) { m.AssignedTo, _ = v.(string) }},
		{Name: "photos", Kind: FieldStringArray,
			Get: func(m *MaintenanceRequest) any { return []string(m.Photos) },
			Set: func(m *MaintenanceRequest, v any) { a, _ := v.([]string); m.Photos = pq.StringArray(a) }},
		{Name: "display_order", Kind: FieldInt,
			Get: func(m *MaintenanceRequest) any { return m.DisplayOrder },
			Set: func(m *MaintenanceRequest, v any) { m.DisplayOrder, _ = v.(int) }},
	},
}
