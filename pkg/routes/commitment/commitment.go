// Package commitment mounts routes for investor commitments.
package commitment

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers commitment routes
func Register(g *echo.Group) {
	crud.Register[models.Commitment](g)
}
