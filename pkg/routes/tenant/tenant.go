// Package tenant mounts routes for renting tenants.
package tenant

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers tenant routes
func Register(g *echo.Group) {
	crud.Register[models.Tenant](g)
}
