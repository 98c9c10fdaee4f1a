// Package maintenancerequest mounts routes for maintenance requests.
package maintenancerequest

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers maintenance request routes
func Register(g *echo.Group) {
	crud.Register[models.MaintenanceRequest](g)
}
