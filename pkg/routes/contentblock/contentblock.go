// Package contentblock mounts routes for site content blocks.
package contentblock

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers content block routes
func Register(g *echo.Group) {
	crud.Register[models.ContentBlock](g)
}
