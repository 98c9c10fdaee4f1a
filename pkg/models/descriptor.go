package models

// FieldKind tells the form layer how to coerce raw input for a field.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldInt
	FieldFloat
	FieldBool
	FieldTime
	FieldStringArray
	FieldJSON
)

// FieldSpec describes one settable field of an entity: its column name, how
// input is coerced, whether it participates in search, and whether Submit
// must see it populated.
type FieldSpec[T any] struct {
	Name       string
	Kind       FieldKind
	Required   bool
	Searchable bool
	Get        func(*T) any
	Set        func(*T, any)
}

// Sort names a single-column ordering.
type Sort struct {
	Key  string
	Desc bool
}

// Descriptor is the per-entity configuration consumed by the generic
// repository, list view, form and dashboard layers. One Descriptor value is
// declared per entity family; everything else is shared code.
type Descriptor[T any] struct {
	Entity          string
	Table           string
	ActiveField     string // boolean visibility column, "" when the family has none
	AttachmentField string // text[] column holding attachment URLs, "" when none
	DefaultSort     Sort
	Fields          []FieldSpec[T]
	Defaults        func() T
	Meta            func(*T) *Envelope
}

// Field looks up a FieldSpec by column name.
func (d Descriptor[T]) Field(name string) (FieldSpec[T], bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec[T]{}, false
}

// SearchableFields returns the columns matched by free-text search.
func (d Descriptor[T]) SearchableFields() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Searchable {
			out = append(out, f.Name)
		}
	}
	return out
}

// RequiredFields returns the columns Submit validates for presence.
func (d Descriptor[T]) RequiredFields() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
