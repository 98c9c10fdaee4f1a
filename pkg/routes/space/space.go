// Package space mounts routes for bookable spaces.
package space

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers space routes
func Register(g *echo.Group) {
	crud.Register[models.Space](g)
}
