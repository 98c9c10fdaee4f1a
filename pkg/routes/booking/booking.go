// Package booking mounts routes for space bookings. Creation runs under a
// short-lived Redis lock keyed by space and start time so two overlapping
// requests cannot both claim the slot.
package booking

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/metrics"
	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/redis"
	"github.com/Ramsey-B/arbor/pkg/repositories"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
	"github.com/Ramsey-B/arbor/pkg/tracing"
)

// SlotGuard wraps the distributed lock used for booking creation. It is
// optional; without Redis, bookings are created unguarded.
type SlotGuard struct {
	Locker *redis.Locker
	TTL    time.Duration
}

// Register registers booking routes
func Register(g *echo.Group) {
	g.GET("", crud.List[models.Booking])
	g.POST("", Create)
	g.GET("/:id", crud.Get[models.Booking])
	g.PUT("/:id", crud.Update[models.Booking])
	g.DELETE("/:id", crud.Delete[models.Booking])
	g.POST("/:id/attachments", crud.UploadAttachment[models.Booking])
}

// Create reserves the slot lock before delegating to the shared create
// handler. Contention maps to 409 rather than letting both requests race to
// insert.
func Create(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "booking_handler.Create")
	defer span.End()

	ctx, guard, err := ectoinject.GetContext[*SlotGuard](ctx)
	if err != nil || guard == nil || guard.Locker == nil {
		return crud.Create[models.Booking](c)
	}

	orgID, err := repositories.GetOrgID(ctx)
	if err != nil {
		return err
	}

	var body struct {
		SpaceRef string    `json:"space_ref"`
		StartsAt time.Time `json:"starts_at"`
	}
	if err := bindPeek(c, &body); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	key := fmt.Sprintf("%s:%s:%d", orgID, body.SpaceRef, body.StartsAt.Unix())
	lock, err := guard.Locker.Acquire(ctx, key, guard.TTL)
	if err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			metrics.BookingLockContention.Inc()
			return httperror.NewHTTPError(http.StatusConflict, "slot is being booked by another request")
		}
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to acquire booking lock")
	}
	defer lock.Release(ctx)

	return crud.Create[models.Booking](c)
}

// bindPeek reads the slot fields without consuming the body for the create
// handler that runs after.
func bindPeek(c echo.Context, out any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	return json.Unmarshal(body, out)
}
