package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/Ramsey-B/arbor/pkg/metrics"
	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/objectstore"
	"github.com/Ramsey-B/arbor/pkg/tracing"
)

// Counts is the dashboard projection for one entity family. Active is nil
// for families without a visibility flag.
type Counts struct {
	Total  int
	Active *int
}

// Store is the boundary every view model and handler talks to. One instance
// per entity family; EntityRepository is the Postgres implementation.
type Store[T any] interface {
	List(ctx context.Context, filter map[string]any, sort *models.Sort) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, entity T) (*T, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	UploadAttachment(ctx context.Context, ownerID uuid.UUID, filename string, content []byte, contentType string) (string, error)
	AttachURL(ctx context.Context, ownerID uuid.UUID, url string) error
	Counts(ctx context.Context) (Counts, error)
	Descriptor() models.Descriptor[T]
}

// EntityRepository implements Store[T] against Postgres, configured entirely
// by the entity's Descriptor.
type EntityRepository[T any] struct {
	*Repository
	desc        models.Descriptor[T]
	strct       *database.Struct
	attachments *objectstore.Attachments
}

// NewEntityRepository creates a repository for one entity family.
// attachments may be nil when object storage is not configured; attachment
// operations then fail with StoreError.
func NewEntityRepository[T any](db database.DB, logger ectologger.Logger, desc models.Descriptor[T], attachments *objectstore.Attachments) *EntityRepository[T] {
	return &EntityRepository[T]{
		Repository:  NewRepository(db, logger),
		desc:        desc,
		strct:       database.NewStruct(new(T)),
		attachments: attachments,
	}
}

// Descriptor returns the per-entity configuration.
func (r *EntityRepository[T]) Descriptor() models.Descriptor[T] {
	return r.desc
}

// List returns the full matching set for the org: optional equality filters
// on known columns and a single-key sort. There is no pagination; the view
// layers consume the whole result. The returned slice is never nil.
func (r *EntityRepository[T]) List(ctx context.Context, filter map[string]any, sort *models.Sort) ([]T, error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%sRepository.List", r.desc.Entity))
	defer span.End()

	orgID, err := GetOrgID(ctx)
	if err != nil {
		return nil, err
	}

	sb := r.strct.SelectFrom(r.desc.Table)
	sb.Where(sb.Equal("org_id", orgID))

	for name, value := range filter {
		f, ok := r.desc.Field(name)
		if !ok {
			continue // unknown filter keys are ignored, matching the view layer
		}
		sb.Where(sb.Equal(f.Name, r.bindValue(f.Kind, value)))
	}

	sb.OrderBy(r.orderClause(sort))

	query, args := sb.Build()

	var items []T
	err = r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		metrics.EntityOperationsTotal.WithLabelValues(r.desc.Entity, "list", "error").Inc()
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to list %s", r.desc.Table)
		return nil, mapStoreError(r.desc.Entity, "list", err)
	}

	if items == nil {
		items = []T{}
	}

	metrics.EntityOperationsTotal.WithLabelValues(r.desc.Entity, "list", "ok").Inc()
	return items, nil
}

// GetByID returns one record scoped to the org, or nil when absent.
func (r *EntityRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%sRepository.GetByID", r.desc.Entity))
	defer span.End()

	orgID, err := GetOrgID(ctx)
	if err != nil {
		return nil, err
	}

	sb := r.strct.SelectFrom(r.desc.Table)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("org_id", orgID),
	)

	query, args := sb.Build()

	var entity T
	err = r.db.GetContext(ctx, &entity, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to get %s by ID", r.desc.Entity)
		return nil, mapStoreError(r.desc.Entity, "get", err)
	}

	return &entity, nil
}

// Create inserts one record. The id and timestamps are assigned here, never
// taken from the draft.
func (r *EntityRepository[T]) Create(ctx context.Context, entity T) (*T, error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%sRepository.Create", r.desc.Entity))
	defer span.End()

	orgID, err := GetOrgID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	meta := r.desc.Meta(&entity)
	meta.ID = uuid.New()
	meta.OrgID = orgID
	meta.CreatedAt = now
	meta.UpdatedAt = now

	ib := r.strct.InsertInto(r.desc.Table, entity)
	query, args := ib.Build()

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		metrics.EntityOperationsTotal.WithLabelValues(r.desc.Entity, "create", "error").Inc()
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to create %s", r.desc.Entity)
		return nil, mapStoreError(r.desc.Entity, "create", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":     meta.ID,
		"org_id": orgID,
	}).Infof("created %s", r.desc.Entity)

	metrics.EntityOperationsTotal.WithLabelValues(r.desc.Entity, "create", "ok").Inc()
	return r.GetByID(ctx, meta.ID)
}

// Update applies a partial patch by id. Unknown columns are rejected;
// updated_at is always refreshed. Matching no row is not an error.
func (r *EntityRepository[T]) Update(ctx context.Context, id uuid.UUID, patch map[string]any) error {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%sRepository.Update", r.desc.Entity))
	defer span.End()

	orgID, err := GetOrgID(ctx)
	if err != nil {
		return err
	}

	ub := database.NewUpdateBuilder()
	ub.Update(r.desc.Table)
	ub.Set(ub.Assign("updated_at", time.Now().UTC()))

	for name, value := range patch {
		f, ok := r.desc.Field(name)
		if !ok {
			return &ValidationError{Field: name, Message: "unknown field"}
		}
		ub.Set(ub.Assign(f.Name, r.bindValue(f.Kind, value)))
	}

	ub.Where(
		ub.Equal("id", id),
		ub.Equal("org_id", orgID),
	)

	query, args := ub.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		metrics.EntityOperationsTotal.WithLabelValues(r.desc.Entity, "update", "error").Inc()
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to update %s", r.desc.Entity)
		return mapStoreError(r.desc.Entity, "update", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"org_id":        orgID,
		"rows_affected": rowsAffected,
	}).Infof("updated %s", r.desc.Entity)

	metrics.EntityOperationsTotal.WithLabelValues(r.desc.Entity, "update", "ok").Inc()
	return nil
}

// Delete hard-deletes by id. Deleting an absent id is a no-op.
func (r *EntityRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%sRepository.Delete", r.desc.Entity))
	defer span.End()

	orgID, err := GetOrgID(ctx)
	if err != nil {
		return err
	}

	db := database.NewDeleteBuilder()
	db.DeleteFrom(r.desc.Table)
	db.Where(
		db.Equal("id", id),
		db.Equal("org_id", orgID),
	)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		metrics.EntityOperationsTotal.WithLabelValues(r.desc.Entity, "delete", "error").Inc()
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to delete %s", r.desc.Entity)
		return mapStoreError(r.desc.Entity, "delete", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"org_id":        orgID,
		"rows_affected": rowsAffected,
	}).Infof("deleted %s", r.desc.Entity)

	metrics.EntityOperationsTotal.WithLabelValues(r.desc.Entity, "delete", "ok").Inc()
	return nil
}

// Counts returns the dashboard projection: total rows and, when the family
// has a visibility flag, how many are flagged active.
func (r *EntityRepository[T]) Counts(ctx context.Context) (Counts, error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%sRepository.Counts", r.desc.Entity))
	defer span.End()

	orgID, err := GetOrgID(ctx)
	if err != nil {
		return Counts{}, err
	}

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(r.desc.Table)
	sb.Where(sb.Equal("org_id", orgID))

	query, args := sb.Build()

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to count %s", r.desc.Table)
		return Counts{}, mapStoreError(r.desc.Entity, "counts", err)
	}

	counts := Counts{Total: total}

	if r.desc.ActiveField != "" {
		ab := database.NewSelectBuilder()
		ab.Select("COUNT(*)")
		ab.From(r.desc.Table)
		ab.Where(
			ab.Equal("org_id", orgID),
			ab.Equal(r.desc.ActiveField, true),
		)

		query, args = ab.Build()

		var active int
		if err := r.db.GetContext(ctx, &active, query, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).Errorf("failed to count active %s", r.desc.Table)
			return Counts{}, mapStoreError(r.desc.Entity, "counts", err)
		}
		counts.Active = &active
	}

	return counts, nil
}

// UploadAttachment stores the file under a path keyed by the owner id with a
// generated object name, then appends the resulting URL to the entity's
// attachment column. A failure after the object is stored surfaces as
// AttachmentUploadError so the caller can retry the patch without
// re-uploading.
func (r *EntityRepository[T]) UploadAttachment(ctx context.Context, ownerID uuid.UUID, filename string, content []byte, contentType string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%sRepository.UploadAttachment", r.desc.Entity))
	defer span.End()

	if r.attachments == nil {
		return "", &StoreError{Entity: r.desc.Entity, Op: "upload", Err: errors.New("attachment storage is not configured")}
	}
	if r.desc.AttachmentField == "" {
		return "", &StoreError{Entity: r.desc.Entity, Op: "upload", Err: errors.New("entity has no attachment field")}
	}

	ext := filepath.Ext(filename)
	objectName := fmt.Sprintf("%s_%d%s", ownerID, time.Now().UnixMilli(), ext)
	key := fmt.Sprintf("%s/%s/%s", r.desc.Table, ownerID, objectName)

	err := r.attachments.Put(ctx, key, bytes.NewReader(content), int64(len(content)), contentType)
	if err != nil {
		metrics.AttachmentUploadsTotal.WithLabelValues(r.desc.Entity, "store_error").Inc()
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to store attachment for %s", r.desc.Entity)
		return "", &StoreError{Entity: r.desc.Entity, Op: "upload", Err: err}
	}

	url := r.attachments.PublicURL(key)

	if err := r.AttachURL(ctx, ownerID, url); err != nil {
		metrics.AttachmentUploadsTotal.WithLabelValues(r.desc.Entity, "patch_error").Inc()
		return url, &AttachmentUploadError{Entity: r.desc.Entity, OwnerID: ownerID, URL: url, Err: err}
	}

	metrics.AttachmentUploadsTotal.WithLabelValues(r.desc.Entity, "ok").Inc()
	return url, nil
}

// AttachURL appends an already-stored object URL to the entity's attachment
// column. Exposed separately so a partial upload can be retried without
// re-storing the object.
func (r *EntityRepository[T]) AttachURL(ctx context.Context, ownerID uuid.UUID, url string) error {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("%sRepository.AttachURL", r.desc.Entity))
	defer span.End()

	orgID, err := GetOrgID(ctx)
	if err != nil {
		return err
	}

	col := r.desc.AttachmentField
	ub := database.NewUpdateBuilder()
	ub.Update(r.desc.Table)
	ub.Set(
		fmt.Sprintf("%s = array_append(%s, %s)", col, col, ub.Var(url)),
		ub.Assign("updated_at", time.Now().UTC()),
	)
	ub.Where(
		ub.Equal("id", ownerID),
		ub.Equal("org_id", orgID),
	)

	query, args := ub.Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to append attachment url for %s", r.desc.Entity)
		return mapStoreError(r.desc.Entity, "attach", err)
	}

	return nil
}

// bindValue converts view-layer values into driver-compatible ones.
func (r *EntityRepository[T]) bindValue(kind models.FieldKind, value any) any {
	switch kind {
	case models.FieldStringArray:
		if s, ok := value.([]string); ok {
			return pq.StringArray(s)
		}
	case models.FieldJSON:
		if m, ok := value.(map[string]any); ok {
			return database.JSONB[map[string]any]{Data: m}
		}
	}
	return value
}

// orderClause validates the requested sort against known columns and falls
// back to the descriptor default.
func (r *EntityRepository[T]) orderClause(sort *models.Sort) string {
	chosen := r.desc.DefaultSort
	if sort != nil && sort.Key != "" && r.sortable(sort.Key) {
		chosen = *sort
	}

	direction := "ASC"
	if chosen.Desc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", chosen.Key, direction)
}

func (r *EntityRepository[T]) sortable(key string) bool {
	switch key {
	case "display_order", "created_at", "updated_at":
		return true
	}
	_, ok := r.desc.Field(key)
	return ok
}
