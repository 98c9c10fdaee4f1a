package forms

import (
	"context"
	"sync"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/repositories"
)

var validate = validator.New()

// PendingAttachment is a file queued on the form. URL is set once the object
// is stored; a retry after a partial failure only re-links it, the bytes are
// never uploaded twice.
type PendingAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
	URL         string
	Attached    bool
}

// ViewModel drives a create/edit screen for one entity family. The draft is
// mutated field by field with form-style coercion; validation happens once,
// at submit.
type ViewModel[T any] struct {
	store repositories.Store[T]
	desc  models.Descriptor[T]

	mu          sync.Mutex
	draft       T
	editing     bool
	id          uuid.UUID
	attachments []*PendingAttachment
}

func NewViewModel[T any](store repositories.Store[T]) *ViewModel[T] {
	return &ViewModel[T]{
		store: store,
		desc:  store.Descriptor(),
	}
}

// LoadForCreate resets the form to the family defaults.
func (vm *ViewModel[T]) LoadForCreate() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.draft = vm.desc.Defaults()
	vm.editing = false
	vm.id = uuid.Nil
	vm.attachments = nil
}

// LoadForEdit seeds the form from the stored record.
func (vm *ViewModel[T]) LoadForEdit(ctx context.Context, id uuid.UUID) error {
	entity, err := vm.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entity == nil {
		return httperror.NewHTTPErrorf(404, "%s %s not found", vm.desc.Entity, id)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.draft = *entity
	for _, f := range vm.desc.Fields {
		if f.Kind != models.FieldStringArray {
			continue
		}
		if s, _ := f.Get(&vm.draft).([]string); s == nil {
			f.Set(&vm.draft, []string{})
		}
	}
	vm.editing = true
	vm.id = id
	vm.attachments = nil
	return nil
}

// SetField writes one form value into the draft, coercing it to the field's
// kind first. Numeric coercion never fails; garbage becomes zero.
func (vm *ViewModel[T]) SetField(name string, value any) error {
	f, ok := vm.desc.Field(name)
	if !ok {
		return &repositories.ValidationError{Field: name, Message: "unknown field"}
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	switch f.Kind {
	case models.FieldInt:
		f.Set(&vm.draft, CoerceInt(value))
	case models.FieldFloat:
		f.Set(&vm.draft, CoerceFloat(value))
	case models.FieldBool:
		f.Set(&vm.draft, CoerceBool(value))
	case models.FieldStringArray:
		f.Set(&vm.draft, CoerceStringSlice(value))
	case models.FieldTime:
		f.Set(&vm.draft, coerceTime(value))
	default:
		f.Set(&vm.draft, value)
	}
	return nil
}

// Draft returns a copy of the current draft.
func (vm *ViewModel[T]) Draft() T {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.draft
}

// AddAttachment queues a file to upload after the entity is saved.
func (vm *ViewModel[T]) AddAttachment(filename, contentType string, content []byte) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.attachments = append(vm.attachments, &PendingAttachment{
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	})
}

// Submit validates the draft, saves it, and uploads any queued attachments
// in order. On a partial attachment failure the entity is already saved and
// the error is an AttachmentUploadError; calling Submit again finishes the
// remaining uploads without redoing completed ones.
func (vm *ViewModel[T]) Submit(ctx context.Context) (*T, error) {
	vm.mu.Lock()
	draft := vm.draft
	editing := vm.editing
	id := vm.id
	vm.mu.Unlock()

	if err := vm.validateRequired(&draft); err != nil {
		return nil, err
	}

	var saved *T
	var err error
	if editing {
		saved, err = vm.submitEdit(ctx, id, &draft)
	} else {
		saved, err = vm.store.Create(ctx, draft)
		if err == nil && saved != nil {
			vm.mu.Lock()
			vm.editing = true
			vm.id = vm.desc.Meta(saved).ID
			vm.mu.Unlock()
		}
	}
	if err != nil {
		return nil, err
	}

	ownerID := vm.desc.Meta(saved).ID
	if err := vm.uploadAttachments(ctx, ownerID); err != nil {
		return saved, err
	}

	final, err := vm.store.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if final == nil {
		// the row vanished between save and re-read; hand back what was saved
		return saved, nil
	}
	return final, nil
}

// submitEdit writes the whole draft back as a patch. Partial patches are a
// repository affair; the form always knows every field. Optional time fields
// that were never set stay out of the patch so a NULL column is not
// overwritten with the zero date.
func (vm *ViewModel[T]) submitEdit(ctx context.Context, id uuid.UUID, draft *T) (*T, error) {
	patch := make(map[string]any, len(vm.desc.Fields))
	for _, f := range vm.desc.Fields {
		value := f.Get(draft)
		if f.Kind == models.FieldTime && !f.Required {
			if t, ok := value.(time.Time); ok && t.IsZero() {
				continue
			}
		}
		patch[f.Name] = value
	}

	if err := vm.store.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	entity, err := vm.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, httperror.NewHTTPErrorf(404, "%s %s not found", vm.desc.Entity, id)
	}
	return entity, nil
}

func (vm *ViewModel[T]) validateRequired(draft *T) error {
	for _, f := range vm.desc.Fields {
		if !f.Required {
			continue
		}
		value := f.Get(draft)
		switch v := value.(type) {
		case string:
			if err := validate.Var(v, "required"); err != nil {
				return &repositories.ValidationError{Field: f.Name, Message: "is required"}
			}
		case time.Time:
			if v.IsZero() {
				return &repositories.ValidationError{Field: f.Name, Message: "is required"}
			}
		case *time.Time:
			if v == nil || v.IsZero() {
				return &repositories.ValidationError{Field: f.Name, Message: "is required"}
			}
		case nil:
			return &repositories.ValidationError{Field: f.Name, Message: "is required"}
		}
	}
	return nil
}

// uploadAttachments runs strictly in order, one at a time. A pending entry
// that already has a URL was stored on an earlier attempt and only needs the
// link patched on.
func (vm *ViewModel[T]) uploadAttachments(ctx context.Context, ownerID uuid.UUID) error {
	vm.mu.Lock()
	pending := vm.attachments
	vm.mu.Unlock()

	for _, att := range pending {
		if att.Attached {
			continue
		}

		if att.URL != "" {
			if err := vm.store.AttachURL(ctx, ownerID, att.URL); err != nil {
				return &repositories.AttachmentUploadError{
					Entity:  vm.desc.Entity,
					OwnerID: ownerID,
					URL:     att.URL,
					Err:     err,
				}
			}
			att.Attached = true
			continue
		}

		url, err := vm.store.UploadAttachment(ctx, ownerID, att.Filename, att.Content, att.ContentType)
		if err != nil {
			// a non-empty URL means the bytes were stored and only the link
			// failed; remember it so the retry skips the upload
			att.URL = url
			return err
		}
		att.URL = url
		att.Attached = true
	}
	return nil
}

func coerceTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}
