// Package lease mounts routes for leases.
package lease

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers lease routes
func Register(g *echo.Group) {
	crud.Register[models.Lease](g)
}
