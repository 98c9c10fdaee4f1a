// Package application mounts routes for tenant applications.
package application

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers application routes
func Register(g *echo.Group) {
	crud.Register[models.Application](g)
}
