// Package kitchen mounts routes for kitchen corners.
package kitchen

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers kitchen routes
func Register(g *echo.Group) {
	crud.Register[models.Kitchen](g)
}
