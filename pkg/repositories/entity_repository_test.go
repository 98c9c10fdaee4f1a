package repositories_test

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appctx "github.com/Ramsey-B/arbor/pkg/context"
	"github.com/Ramsey-B/arbor/pkg/database"
	"github.com/Ramsey-B/arbor/pkg/models"
	"github.com/Ramsey-B/arbor/pkg/repositories"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func getTestDB(t *testing.T) database.DB {
	// Use environment variables or defaults for test DB
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbUser := os.Getenv("DB_USER_NAME")
	if dbUser == "" {
		dbUser = "user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "password"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "arbor"
	}

	dsn := "host=" + dbHost + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	return database.NewDatabaseInstance(db, getTestLogger())
}

func getTestContext(orgID uuid.UUID) context.Context {
	ctx := context.Background()
	return appctx.SetOrgID(ctx, orgID.String())
}

func newKitchenRepo(t *testing.T) *repositories.EntityRepository[models.Kitchen] {
	return repositories.NewEntityRepository(getTestDB(t), getTestLogger(), models.KitchenDescriptor, nil)
}

func TestEntityRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newKitchenRepo(t)
	orgID := uuid.New()
	ctx := getTestContext(orgID)

	created, err := repo.Create(ctx, models.Kitchen{
		Name:      "North Kitchen",
		Slug:      "north-kitchen",
		Cuisine:   "georgian",
		Amenities: pq.StringArray{"cold-storage"},
		Images:    pq.StringArray{},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, orgID, created.OrgID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "North Kitchen", created.Name)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.ID, fetched.ID)

	err = repo.Update(ctx, created.ID, map[string]any{"name": "North Kitchen II"})
	require.NoError(t, err)

	fetched, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "North Kitchen II", fetched.Name)
	assert.True(t, fetched.UpdatedAt.After(fetched.CreatedAt))

	items, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)

	gone, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// deleting again is a no-op
	err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
}

func TestEntityRepository_OrgScoping(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newKitchenRepo(t)
	orgA := getTestContext(uuid.New())
	orgB := getTestContext(uuid.New())

	created, err := repo.Create(orgA, models.Kitchen{
		Name:      "Org A Kitchen",
		Slug:      "org-a-kitchen",
		Amenities: pq.StringArray{},
		Images:    pq.StringArray{},
	})
	require.NoError(t, err)

	// another org cannot see it
	fetched, err := repo.GetByID(orgB, created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)

	items, err := repo.List(orgB, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, repo.Delete(orgA, created.ID))
}

func TestEntityRepository_ListFilterAndSort(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newKitchenRepo(t)
	ctx := getTestContext(uuid.New())

	for _, k := range []models.Kitchen{
		{Name: "A", Slug: "a", Cuisine: "georgian", IsAvailable: true, Amenities: pq.StringArray{}, Images: pq.StringArray{}},
		{Name: "B", Slug: "b", Cuisine: "italian", IsAvailable: false, Amenities: pq.StringArray{}, Images: pq.StringArray{}},
		{Name: "C", Slug: "c", Cuisine: "georgian", IsAvailable: true, Amenities: pq.StringArray{}, Images: pq.StringArray{}},
	} {
		_, err := repo.Create(ctx, k)
		require.NoError(t, err)
	}

	georgian, err := repo.List(ctx, map[string]any{"cuisine": "georgian"}, nil)
	require.NoError(t, err)
	assert.Len(t, georgian, 2)

	// unknown filter keys are ignored rather than erroring
	all, err := repo.List(ctx, map[string]any{"bogus": 1}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sorted, err := repo.List(ctx, nil, &models.Sort{Key: "name", Desc: true})
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, "C", sorted[0].Name)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Total)
	require.NotNil(t, counts.Active)
	assert.Equal(t, 2, *counts.Active)
}

func TestEntityRepository_MissingOrg(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newKitchenRepo(t)

	_, err := repo.List(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, httperror.IsHTTPError(err))
	assert.Equal(t, http.StatusUnauthorized, httperror.GetStatusCode(err))
}
