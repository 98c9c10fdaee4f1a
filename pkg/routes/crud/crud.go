// Package crud provides the shared HTTP handlers every entity family mounts.
// Each family's route package binds these to its own path prefix.
package crud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/events"
	"github.com/Ramsey-B/arbor/pkg/forms"
	"github.com/Ramsey-B/arbor/pkg/listview"
	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/repositories"
	"github.com/Ramsey-B/arbor/pkg/tracing"
)

// reserved query params that are never treated as column filters
var reservedParams = map[string]bool{
	"q":     true,
	"sort":  true,
	"order": true,
}

// Register mounts the standard operations for one entity family.
func Register[T any](g *echo.Group) {
	g.GET("", List[T])
	g.POST("", Create[T])
	g.GET("/:id", Get[T])
	g.PUT("/:id", Update[T])
	g.DELETE("/:id", Delete[T])
	g.POST("/:id/attachments", UploadAttachment[T])
}

// List returns all matching records for the org. Query params: q for search,
// sort and order for ordering, any descriptor column for equality filtering.
func List[T any](c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "crud_handler.List")
	defer span.End()

	ctx, store, err := ectoinject.GetContext[repositories.Store[T]](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}
	desc := store.Descriptor()

	filter := buildFilter(desc, c.QueryParams())

	var sort *models.Sort
	if key := c.QueryParam("sort"); key != "" {
		sort = &models.Sort{Key: key, Desc: c.QueryParam("order") == "desc"}
	}

	vm := listview.NewViewModel(store)
	defer vm.Close()
	vm.Configure(filter, sort)
	vm.SetSearchTerm(c.QueryParam("q"))

	if err := vm.Refresh(ctx); err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items": vm.Visible(),
	})
}

// Get returns one record by id.
func Get[T any](c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "crud_handler.Get")
	defer span.End()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx, store, err := ectoinject.GetContext[repositories.Store[T]](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	entity, err := store.GetByID(ctx, id)
	if err != nil {
		return mapDomainError(err)
	}
	if entity == nil {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "%s not found", store.Descriptor().Entity)
	}

	return c.JSON(http.StatusOK, entity)
}

// Create builds a draft from the request body and saves it. Responds with
// the stored record, re-read after the insert.
func Create[T any](c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "crud_handler.Create")
	defer span.End()

	ctx, store, err := ectoinject.GetContext[repositories.Store[T]](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	vm := forms.NewViewModel(store)
	vm.LoadForCreate()
	if err := applyFields(vm, store.Descriptor(), body); err != nil {
		return mapDomainError(err)
	}

	saved, err := vm.Submit(ctx)
	if err != nil {
		return mapDomainError(err)
	}

	emitEvent(ctx, events.EventCreated, store.Descriptor().Entity, store.Descriptor().Meta(saved), saved)

	return c.JSON(http.StatusCreated, saved)
}

// Update loads the record into a form, applies the body field by field, and
// writes the whole draft back.
func Update[T any](c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "crud_handler.Update")
	defer span.End()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx, store, err := ectoinject.GetContext[repositories.Store[T]](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	vm := forms.NewViewModel(store)
	if err := vm.LoadForEdit(ctx, id); err != nil {
		return mapDomainError(err)
	}
	if err := applyFields(vm, store.Descriptor(), body); err != nil {
		return mapDomainError(err)
	}

	saved, err := vm.Submit(ctx)
	if err != nil {
		return mapDomainError(err)
	}

	emitEvent(ctx, events.EventUpdated, store.Descriptor().Entity, store.Descriptor().Meta(saved), saved)

	return c.JSON(http.StatusOK, saved)
}

// Delete hard-deletes the record.
func Delete[T any](c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "crud_handler.Delete")
	defer span.End()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx, store, err := ectoinject.GetContext[repositories.Store[T]](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	existing, err := store.GetByID(ctx, id)
	if err != nil {
		return mapDomainError(err)
	}
	if existing == nil {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "%s not found", store.Descriptor().Entity)
	}

	if err := store.Delete(ctx, id); err != nil {
		return mapDomainError(err)
	}

	emitEvent(ctx, events.EventDeleted, store.Descriptor().Entity, store.Descriptor().Meta(existing), nil)

	return c.NoContent(http.StatusNoContent)
}

// UploadAttachment accepts a multipart file and attaches its stored URL to
// the record. When storage succeeds but the link fails, the response carries
// the URL so the client can retry the link alone.
func UploadAttachment[T any](c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "crud_handler.UploadAttachment")
	defer span.End()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ctx, store, err := ectoinject.GetContext[repositories.Store[T]](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	existing, err := store.GetByID(ctx, id)
	if err != nil {
		return mapDomainError(err)
	}
	if existing == nil {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "%s not found", store.Descriptor().Entity)
	}

	// the client supplies the URL when retrying a failed link
	if retryURL := c.FormValue("url"); retryURL != "" {
		if err := store.AttachURL(ctx, id, retryURL); err != nil {
			return mapDomainError(err)
		}
		return c.JSON(http.StatusOK, map[string]any{"url": retryURL})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := file.Open()
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "failed to open file")
	}
	defer src.Close()

	content := make([]byte, file.Size)
	if _, err := io.ReadFull(src, content); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "failed to read file")
	}

	url, err := store.UploadAttachment(ctx, id, file.Filename, content, file.Header.Get("Content-Type"))
	if err != nil {
		var uploadErr *repositories.AttachmentUploadError
		if errors.As(err, &uploadErr) {
			// stored but not linked; hand the URL back for a link-only retry
			return c.JSON(http.StatusBadGateway, map[string]any{
				"message": uploadErr.Error(),
				"url":     uploadErr.URL,
			})
		}
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{"url": url})
}

// applyFields pushes body values through the form's coercion, skipping
// envelope columns the server owns.
func applyFields[T any](vm *forms.ViewModel[T], desc models.Descriptor[T], body map[string]any) error {
	for key, value := range body {
		switch key {
		case "id", "org_id", "created_at", "updated_at":
			continue
		}
		if _, ok := desc.Field(key); !ok {
			continue
		}
		if err := vm.SetField(key, value); err != nil {
			return err
		}
	}
	return nil
}

// emitEvent publishes a lifecycle event when Kafka is wired, and stays quiet
// when it is not.
func emitEvent(ctx context.Context, eventType, entity string, meta *models.Envelope, payload any) {
	ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx)
	if err != nil || emitter == nil {
		return
	}
	_ = emitter.Emit(ctx, eventType, entity, meta.OrgID, meta.ID, payload)
}

// mapDomainError converts repository errors to HTTP errors.
func mapDomainError(err error) error {
	if httperror.IsHTTPError(err) {
		return err
	}

	var validationErr *repositories.ValidationError
	if errors.As(err, &validationErr) {
		return httperror.NewHTTPError(http.StatusBadRequest, validationErr.Error())
	}

	var uploadErr *repositories.AttachmentUploadError
	if errors.As(err, &uploadErr) {
		return httperror.NewHTTPError(http.StatusBadGateway, uploadErr.Error())
	}

	var storeErr *repositories.StoreError
	if errors.As(err, &storeErr) {
		return httperror.NewHTTPError(http.StatusInternalServerError, storeErr.Error())
	}

	return httperror.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("unexpected error: %v", err))
}

// buildFilter turns query params into equality filters on known scalar
// columns. Array and JSONB columns have no single-value equality, so params
// naming them are ignored rather than sent to the store as raw strings.
func buildFilter[T any](desc models.Descriptor[T], params url.Values) map[string]any {
	filter := map[string]any{}
	for key, values := range params {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		f, ok := desc.Field(key)
		if !ok {
			continue
		}
		switch f.Kind {
		case models.FieldStringArray, models.FieldJSON:
			continue
		}
		filter[key] = coerceParam(f.Kind, values[0])
	}
	return filter
}

// coerceParam converts a query string value to the column's kind.
func coerceParam(kind models.FieldKind, value string) any {
	switch kind {
	case models.FieldInt:
		return forms.CoerceInt(value)
	case models.FieldFloat:
		return forms.CoerceFloat(value)
	case models.FieldBool:
		return forms.CoerceBool(value)
	}
	return value
}
