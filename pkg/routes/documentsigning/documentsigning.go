// Package documentsigning mounts routes for document signing workflows.
package documentsigning

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/routes/crud"
)

// Register registers document signing routes
func Register(g *echo.Group) {
	crud.Register[models.DocumentSigning](g)
}
