package listview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/repositories"
)

type widget struct {
	models.Envelope
	Name string
	Rank int
}

var widgetDesc = models.Descriptor[widget]{
	Entity:      "widget",
	Table:       "widgets",
	DefaultSort: models.Sort{Key: "rank"},
	Defaults:    func() widget { return widget{} },
	Meta:        func(w *widget) *models.Envelope { return &w.Envelope },
	Fields: []models.FieldSpec[widget]{
		{Name: "name", Kind: models.FieldString, Required: true, Searchable: true,
			Get: func(w *widget) any { return w.Name },
			Set: func(w *widget, v any) { w.Name, _ = v.(string) }},
		{Name: "rank", Kind: models.FieldInt,
			Get: func(w *widget) any { return w.Rank },
			Set: func(w *widget, v any) { w.Rank, _ = v.(int) }},
	},
}

// fakeStore is an in-memory Store used by the view model tests. block, when
// set, stalls the next List call until released.
type fakeStore struct {
	mu      sync.Mutex
	items   []widget
	listErr error
	block   chan struct{}
	deleted []uuid.UUID
}

func (f *fakeStore) List(ctx context.Context, filter map[string]any, sort *models.Sort) ([]widget, error) {
	f.mu.Lock()
	block := f.block
	f.block = nil
	items := make([]widget, len(f.items))
	copy(items, f.items)
	err := f.listErr
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*widget, error) { return nil, nil }
func (f *fakeStore) Create(ctx context.Context, entity widget) (*widget, error) {
	return &entity, nil
}
func (f *fakeStore) Update(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	return nil
}
func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}
func (f *fakeStore) UploadAttachment(ctx context.Context, ownerID uuid.UUID, filename string, content []byte, contentType string) (string, error) {
	return "", nil
}
func (f *fakeStore) AttachURL(ctx context.Context, ownerID uuid.UUID, url string) error { return nil }
func (f *fakeStore) Counts(ctx context.Context) (repositories.Counts, error) {
	return repositories.Counts{}, nil
}
func (f *fakeStore) Descriptor() models.Descriptor[widget] { return widgetDesc }

func newWidget(name string, rank int) widget {
	return widget{
		Envelope: models.Envelope{ID: uuid.New()},
		Name:     name,
		Rank:     rank,
	}
}

func TestRefreshLoadsItems(t *testing.T) {
	store := &fakeStore{items: []widget{newWidget("alpha", 1), newWidget("beta", 2)}}
	vm := NewViewModel[widget](store)
	defer vm.Close()

	require.NoError(t, vm.Refresh(context.Background()))
	assert.Len(t, vm.Visible(), 2)
	assert.False(t, vm.Loading())
	assert.NoError(t, vm.Err())
}

func TestEmptySearchShowsEverything(t *testing.T) {
	store := &fakeStore{items: []widget{newWidget("alpha", 1), newWidget("beta", 2)}}
	vm := NewViewModel[widget](store)
	defer vm.Close()
	require.NoError(t, vm.Refresh(context.Background()))

	vm.SetSearchTerm("")
	assert.Len(t, vm.Visible(), 2)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	store := &fakeStore{items: []widget{
		newWidget("North Kitchen", 1),
		newWidget("South Kitchen", 2),
		newWidget("Rooftop Terrace", 3),
	}}
	vm := NewViewModel[widget](store)
	defer vm.Close()
	require.NoError(t, vm.Refresh(context.Background()))

	vm.SetSearchTerm("kitchen")
	visible := vm.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "North Kitchen", visible[0].Name)

	vm.SetSearchTerm("NORTH")
	visible = vm.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "North Kitchen", visible[0].Name)

	vm.SetSearchTerm("no-such-widget")
	assert.Empty(t, vm.Visible())
}

func TestVisibleSortsNumerically(t *testing.T) {
	store := &fakeStore{items: []widget{
		newWidget("c", 3),
		newWidget("a", 1),
		newWidget("b", 2),
	}}
	vm := NewViewModel[widget](store)
	defer vm.Close()
	require.NoError(t, vm.Refresh(context.Background()))

	visible := vm.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{visible[0].Rank, visible[1].Rank, visible[2].Rank})
}

func TestSortTiesKeepIncomingOrder(t *testing.T) {
	first := newWidget("first", 5)
	second := newWidget("second", 5)
	third := newWidget("third", 5)
	store := &fakeStore{items: []widget{first, second, third}}
	vm := NewViewModel[widget](store)
	defer vm.Close()
	require.NoError(t, vm.Refresh(context.Background()))

	visible := vm.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, first.ID, visible[0].ID)
	assert.Equal(t, second.ID, visible[1].ID)
	assert.Equal(t, third.ID, visible[2].ID)
}

func TestSortDescending(t *testing.T) {
	store := &fakeStore{items: []widget{newWidget("a", 1), newWidget("b", 2)}}
	vm := NewViewModel[widget](store)
	defer vm.Close()

	require.NoError(t, vm.SetSort(context.Background(), models.Sort{Key: "rank", Desc: true}))
	visible := vm.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, 2, visible[0].Rank)
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	store := &fakeStore{items: []widget{newWidget("old", 1)}}
	vm := NewViewModel[widget](store)
	defer vm.Close()

	release := make(chan struct{})
	store.mu.Lock()
	store.block = release
	store.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- vm.Refresh(context.Background())
	}()

	// wait until the slow refresh is in flight
	time.Sleep(20 * time.Millisecond)

	store.mu.Lock()
	store.items = []widget{newWidget("new-a", 1), newWidget("new-b", 2)}
	store.mu.Unlock()

	require.NoError(t, vm.Refresh(context.Background()))
	require.Len(t, vm.Visible(), 2)

	// release the stale request; its single old item must not overwrite
	close(release)
	require.NoError(t, <-done)
	assert.Len(t, vm.Visible(), 2)
}

func TestStaleErrorIsDiscarded(t *testing.T) {
	store := &fakeStore{items: []widget{newWidget("a", 1)}}
	vm := NewViewModel[widget](store)
	defer vm.Close()

	release := make(chan struct{})
	store.mu.Lock()
	store.block = release
	store.listErr = assert.AnError
	store.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- vm.Refresh(context.Background())
	}()
	time.Sleep(20 * time.Millisecond)

	store.mu.Lock()
	store.listErr = nil
	store.mu.Unlock()

	require.NoError(t, vm.Refresh(context.Background()))

	close(release)
	<-done
	assert.NoError(t, vm.Err())
	assert.Len(t, vm.Visible(), 1)
}

func TestRemoveDeletesAndReloads(t *testing.T) {
	doomed := newWidget("doomed", 1)
	store := &fakeStore{items: []widget{doomed, newWidget("keeper", 2)}}
	vm := NewViewModel[widget](store)
	defer vm.Close()
	require.NoError(t, vm.Refresh(context.Background()))

	require.NoError(t, vm.Remove(context.Background(), doomed.ID))

	require.Len(t, store.deleted, 1)
	assert.Equal(t, doomed.ID, store.deleted[0])
	visible := vm.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "keeper", visible[0].Name)
}

func TestCloseAbandonsInFlightRefresh(t *testing.T) {
	store := &fakeStore{items: []widget{newWidget("a", 1)}}
	vm := NewViewModel[widget](store)

	release := make(chan struct{})
	store.mu.Lock()
	store.block = release
	store.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- vm.Refresh(context.Background())
	}()
	time.Sleep(20 * time.Millisecond)

	vm.Close()
	require.NoError(t, <-done)
	assert.Empty(t, vm.Visible())

	// refresh after close is a no-op
	require.NoError(t, vm.Refresh(context.Background()))
	assert.Empty(t, vm.Visible())
}
