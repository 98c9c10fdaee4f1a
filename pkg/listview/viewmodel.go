package listview

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/repositories"
)

// ViewModel drives a list screen for one entity family: it owns the loaded
// set, the search term, the active filters and the sort, and derives the
// visible rows from them. All methods are safe for concurrent use.
//
// Refreshes are guarded by a monotonic request id. When refreshes overlap,
// only the most recently issued one is allowed to commit its result; stale
// responses, successful or failed, are discarded so the screen never shows
// data older than what it already has.
type ViewModel[T any] struct {
	store repositories.Store[T]
	desc  models.Descriptor[T]

	mu        sync.Mutex
	items     []T
	search    string
	filter    map[string]any
	sort      models.Sort
	loading   bool
	err       error
	requestID uint64
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewViewModel[T any](store repositories.Store[T]) *ViewModel[T] {
	ctx, cancel := context.WithCancel(context.Background())
	desc := store.Descriptor()
	return &ViewModel[T]{
		store:  store,
		desc:   desc,
		items:  []T{},
		filter: map[string]any{},
		sort:   desc.DefaultSort,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Refresh reloads the list from the store using the current filter and sort.
// If a newer refresh starts before this one finishes, this one's result is
// thrown away.
func (vm *ViewModel[T]) Refresh(ctx context.Context) error {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return nil
	}
	vm.requestID++
	id := vm.requestID
	vm.loading = true
	filter := make(map[string]any, len(vm.filter))
	for k, v := range vm.filter {
		filter[k] = v
	}
	sort := vm.sort
	vm.mu.Unlock()

	fetchCtx, cancel := mergeCancel(ctx, vm.ctx)
	defer cancel()

	items, err := vm.store.List(fetchCtx, filter, &sort)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.closed || id != vm.requestID {
		return nil
	}

	vm.loading = false
	if err != nil {
		vm.err = err
		return err
	}

	vm.err = nil
	vm.items = items
	return nil
}

// Configure sets filters and sort in one step without reloading. Meant for
// seeding the view model before its first Refresh.
func (vm *ViewModel[T]) Configure(filter map[string]any, sort *models.Sort) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for k, v := range filter {
		vm.filter[k] = v
	}
	if sort != nil {
		vm.sort = *sort
	}
}

// SetSearchTerm updates the search term. Search is derived locally, so no
// refetch happens.
func (vm *ViewModel[T]) SetSearchTerm(term string) {
	vm.mu.Lock()
	vm.search = term
	vm.mu.Unlock()
}

// SetFilter sets an equality filter on a column and reloads.
func (vm *ViewModel[T]) SetFilter(ctx context.Context, key string, value any) error {
	vm.mu.Lock()
	vm.filter[key] = value
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// ClearFilter removes one filter and reloads.
func (vm *ViewModel[T]) ClearFilter(ctx context.Context, key string) error {
	vm.mu.Lock()
	delete(vm.filter, key)
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// SetSort changes the ordering and reloads.
func (vm *ViewModel[T]) SetSort(ctx context.Context, s models.Sort) error {
	vm.mu.Lock()
	vm.sort = s
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// Remove deletes the entity and reloads the list.
func (vm *ViewModel[T]) Remove(ctx context.Context, id uuid.UUID) error {
	if err := vm.store.Delete(ctx, id); err != nil {
		return err
	}
	return vm.Refresh(ctx)
}

// Visible returns the rows the screen should show: the loaded set narrowed
// by the search term and ordered by the current sort. The returned slice is
// a copy.
func (vm *ViewModel[T]) Visible() []T {
	vm.mu.Lock()
	items := make([]T, len(vm.items))
	copy(items, vm.items)
	search := vm.search
	sort := vm.sort
	vm.mu.Unlock()

	out := applySearch(vm.desc, items, search)
	sortItems(vm.desc, out, sort)
	return out
}

// Loading reports whether the newest refresh is still in flight.
func (vm *ViewModel[T]) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

// Err returns the error of the newest completed refresh, if any.
func (vm *ViewModel[T]) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// Close abandons any in-flight refresh and stops the view model from
// committing further state.
func (vm *ViewModel[T]) Close() {
	vm.mu.Lock()
	vm.closed = true
	vm.mu.Unlock()
	vm.cancel()
}

// mergeCancel derives a context from parent that is also cancelled when the
// view model closes.
func mergeCancel(parent, vmCtx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(vmCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
