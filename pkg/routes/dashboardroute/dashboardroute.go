// Package dashboardroute mounts the dashboard summary endpoint.
package dashboardroute

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/dashboard"
	"github.com/Ramsey-B/arbor/pkg/tracing"
)

// Register registers dashboard routes
func Register(g *echo.Group) {
	g.GET("", Summary)
}

// Summary returns counts for every entity family. Families that fail to
// load come back as error tiles; the endpoint itself always returns 200.
func Summary(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "dashboard_handler.Summary")
	defer span.End()

	ctx, agg, err := ectoinject.GetContext[*dashboard.Aggregator](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get aggregator")
	}

	return c.JSON(http.StatusOK, agg.Summarize(ctx))
}
