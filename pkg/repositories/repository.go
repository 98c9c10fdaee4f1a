package repositories

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	appctx "github.com/Ramsey-B/arbor/pkg/context"
	"github.com/Ramsey-B/arbor/pkg/database"
)

// Repository provides common database plumbing with org isolation
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new base repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// DB returns the database instance
func (r *Repository) DB() database.DB {
	return r.db
}

// Logger returns the repository logger
func (r *Repository) Logger() ectologger.Logger {
	return r.logger
}

// GetOrgID extracts and validates org_id from context
func GetOrgID(ctx context.Context) (uuid.UUID, error) {
	orgIDStr := appctx.GetOrgID(ctx)
	if orgIDStr == "" {
		return uuid.Nil, httperror.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	orgID, err := uuid.Parse(orgIDStr)
	if err != nil {
		return uuid.Nil, httperror.NewHTTPError(http.StatusUnauthorized, "invalid authentication token")
	}

	return orgID, nil
}
