// Package experience mounts routes for guest experiences.
package experience

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers experience routes
func Register(g *echo.Group) {
	crud.Register[models.Experience](g)
}
