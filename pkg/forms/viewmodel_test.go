package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/repositories"
)

type listing struct {
	models.Envelope
	Name       string
	Rank       int
	Photos     []string
	ArchivedAt *time.Time
}

var listingDesc = models.Descriptor[listing]{
	Entity:          "listing",
	Table:           "listings",
	AttachmentField: "photos",
	DefaultSort:     models.Sort{Key: "display_order"},
	Defaults:        func() listing { return listing{Photos: []string{}} },
	Meta:            func(l *listing) *models.Envelope { return &l.Envelope },
	Fields: []models.FieldSpec[listing]{
		{Name: "name", Kind: models.FieldString, Required: true, Searchable: true,
			Get: func(l *listing) any { return l.Name },
			Set: func(l *listing, v any) { l.Name, _ = v.(string) }},
		{Name: "rank", Kind: models.FieldInt,
			Get: func(l *listing) any { return l.Rank },
			Set: func(l *listing, v any) { l.Rank, _ = v.(int) }},
		{Name: "photos", Kind: models.FieldStringArray,
			Get: func(l *listing) any { return l.Photos },
			Set: func(l *listing, v any) { l.Photos, _ = v.([]string) }},
		{Name: "archived_at", Kind: models.FieldTime,
			Get: func(l *listing) any {
				if l.ArchivedAt == nil {
					return time.Time{}
				}
				return *l.ArchivedAt
			},
			Set: func(l *listing, v any) {
				t, _ := v.(time.Time)
				if t.IsZero() {
					l.ArchivedAt = nil
					return
				}
				l.ArchivedAt = &t
			}},
	},
}

type formStore struct {
	mu          sync.Mutex
	saved       map[uuid.UUID]listing
	patches     []map[string]any
	uploads     int
	links       []string
	failStore   bool
	failLink    bool
	vanish      bool
	publicBase  string
	createCalls int
}

func newFormStore() *formStore {
	return &formStore{
		saved:      map[uuid.UUID]listing{},
		publicBase: "https://cdn.example.com",
	}
}

func (f *formStore) List(ctx context.Context, filter map[string]any, sort *models.Sort) ([]listing, error) {
	return nil, nil
}

func (f *formStore) GetByID(ctx context.Context, id uuid.UUID) (*listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.vanish {
		return nil, nil
	}
	entity, ok := f.saved[id]
	if !ok {
		return nil, nil
	}
	return &entity, nil
}

func (f *formStore) Create(ctx context.Context, entity listing) (*listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	entity.ID = uuid.New()
	f.saved[entity.ID] = entity
	return &entity, nil
}

func (f *formStore) Update(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	entity := f.saved[id]
	if name, ok := patch["name"].(string); ok {
		entity.Name = name
	}
	if rank, ok := patch["rank"].(int); ok {
		entity.Rank = rank
	}
	f.saved[id] = entity
	return nil
}

func (f *formStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *formStore) UploadAttachment(ctx context.Context, ownerID uuid.UUID, filename string, content []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failStore {
		return "", &repositories.StoreError{Entity: "listing", Op: "upload", Err: errors.New("storage down")}
	}

	f.uploads++
	url := fmt.Sprintf("%s/listings/%s/%s", f.publicBase, ownerID, filename)

	if f.failLink {
		return url, &repositories.AttachmentUploadError{
			Entity:  "listing",
			OwnerID: ownerID,
			URL:     url,
			Err:     errors.New("link failed"),
		}
	}

	f.link(ownerID, url)
	return url, nil
}

func (f *formStore) AttachURL(ctx context.Context, ownerID uuid.UUID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLink {
		return errors.New("link failed")
	}
	f.link(ownerID, url)
	return nil
}

func (f *formStore) link(ownerID uuid.UUID, url string) {
	f.links = append(f.links, url)
	entity := f.saved[ownerID]
	entity.Photos = append(entity.Photos, url)
	f.saved[ownerID] = entity
}

func (f *formStore) Counts(ctx context.Context) (repositories.Counts, error) {
	return repositories.Counts{}, nil
}

func (f *formStore) Descriptor() models.Descriptor[listing] { return listingDesc }

func TestSetFieldCoercesInts(t *testing.T) {
	vm := NewViewModel[listing](newFormStore())
	vm.LoadForCreate()

	require.NoError(t, vm.SetField("rank", "12x"))
	assert.Equal(t, 12, vm.Draft().Rank)

	require.NoError(t, vm.SetField("rank", "abc"))
	assert.Equal(t, 0, vm.Draft().Rank)

	require.NoError(t, vm.SetField("rank", 7.0))
	assert.Equal(t, 7, vm.Draft().Rank)
}

func TestSetFieldUnknownField(t *testing.T) {
	vm := NewViewModel[listing](newFormStore())
	vm.LoadForCreate()

	err := vm.SetField("nope", "x")
	var validationErr *repositories.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "nope", validationErr.Field)
}

func TestSubmitRequiresRequiredFields(t *testing.T) {
	store := newFormStore()
	vm := NewViewModel[listing](store)
	vm.LoadForCreate()

	_, err := vm.Submit(context.Background())
	var validationErr *repositories.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)
	assert.Zero(t, store.createCalls)
}

func TestSubmitCreatesAndRefetches(t *testing.T) {
	store := newFormStore()
	vm := NewViewModel[listing](store)
	vm.LoadForCreate()
	require.NoError(t, vm.SetField("name", "North Kitchen"))

	saved, err := vm.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "North Kitchen", saved.Name)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, 1, store.createCalls)

	// a second submit edits instead of creating again
	require.NoError(t, vm.SetField("rank", 3))
	again, err := vm.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, 1, store.createCalls)
	require.Len(t, store.patches, 1)
}

func TestEditSubmitSendsFullDraft(t *testing.T) {
	store := newFormStore()
	id := uuid.New()
	store.saved[id] = listing{
		Envelope: models.Envelope{ID: id},
		Name:     "Old Name",
		Rank:     1,
		Photos:   []string{},
	}

	vm := NewViewModel[listing](store)
	require.NoError(t, vm.LoadForEdit(context.Background(), id))
	require.NoError(t, vm.SetField("name", "New Name"))

	saved, err := vm.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "New Name", saved.Name)

	require.Len(t, store.patches, 1)
	patch := store.patches[0]
	assert.Contains(t, patch, "name")
	assert.Contains(t, patch, "rank")
	assert.Contains(t, patch, "photos")
}

func TestEditSubmitLeavesUnsetOptionalTimeAlone(t *testing.T) {
	store := newFormStore()
	id := uuid.New()
	store.saved[id] = listing{
		Envelope: models.Envelope{ID: id},
		Name:     "Unarchived",
		Photos:   []string{},
	}

	vm := NewViewModel[listing](store)
	require.NoError(t, vm.LoadForEdit(context.Background(), id))
	require.NoError(t, vm.SetField("rank", 2))

	_, err := vm.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, store.patches, 1)
	assert.NotContains(t, store.patches[0], "archived_at")

	// once the field is set its value does go through
	archived := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, vm.SetField("archived_at", archived))
	_, err = vm.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, store.patches, 2)
	assert.Equal(t, archived, store.patches[1]["archived_at"])
}

func TestSubmitSurvivesVanishedRefetch(t *testing.T) {
	store := newFormStore()
	store.vanish = true
	vm := NewViewModel[listing](store)
	vm.LoadForCreate()
	require.NoError(t, vm.SetField("name", "Fleeting"))

	saved, err := vm.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Fleeting", saved.Name)
	assert.Equal(t, 1, store.createCalls)
}

func TestLoadForEditMissing(t *testing.T) {
	vm := NewViewModel[listing](newFormStore())
	err := vm.LoadForEdit(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, httperror.GetStatusCode(err))
}

func TestAttachmentsUploadSequentially(t *testing.T) {
	store := newFormStore()
	vm := NewViewModel[listing](store)
	vm.LoadForCreate()
	require.NoError(t, vm.SetField("name", "With Photos"))
	vm.AddAttachment("one.jpg", "image/jpeg", []byte("one"))
	vm.AddAttachment("two.jpg", "image/jpeg", []byte("two"))

	saved, err := vm.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.uploads)
	assert.Len(t, saved.Photos, 2)
}

func TestAttachmentRetryDoesNotReupload(t *testing.T) {
	store := newFormStore()
	vm := NewViewModel[listing](store)
	vm.LoadForCreate()
	require.NoError(t, vm.SetField("name", "With Photos"))
	vm.AddAttachment("one.jpg", "image/jpeg", []byte("one"))

	store.failLink = true
	saved, err := vm.Submit(context.Background())

	var uploadErr *repositories.AttachmentUploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.NotEmpty(t, uploadErr.URL)
	// the entity itself was saved before the attachment failed
	require.NotNil(t, saved)
	assert.Equal(t, 1, store.createCalls)
	assert.Equal(t, 1, store.uploads)

	// retry: the object is already stored, only the link is patched
	store.failLink = false
	again, err := vm.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.uploads)
	assert.Equal(t, 1, store.createCalls)
	require.Len(t, again.Photos, 1)
	assert.Equal(t, uploadErr.URL, again.Photos[0])
}

func TestAttachmentStoreFailureSurfacesStoreError(t *testing.T) {
	store := newFormStore()
	vm := NewViewModel[listing](store)
	vm.LoadForCreate()
	require.NoError(t, vm.SetField("name", "With Photos"))
	vm.AddAttachment("one.jpg", "image/jpeg", []byte("one"))

	store.failStore = true
	_, err := vm.Submit(context.Background())
	var storeErr *repositories.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Zero(t, store.uploads)
}
