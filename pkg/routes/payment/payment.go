// Package payment mounts routes for lease payments.
package payment

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers payment routes
func Register(g *echo.Group) {
	crud.Register[models.Payment](g)
}
