package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/castellanimarco/trainflow-engine/internal/core/domain"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "trainflow_user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "secret"
	}
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "trainflow_db"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE user_progress, workouts, meals, users CASCADE")
	require.NoError(t, err, "Failed to clean up database")
}

func newDBUser(t *testing.T) *domain.User {
	u, err := domain.NewUser(uuid.NewString(), uuid.NewString()+"@example.com", "393331234567")
	require.NoError(t, err)
	require.NoError(t, u.SetPassword("correct-horse"))
	return u
}

func TestPostgresUserRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)

	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	t.Run("Create and fetch", func(t *testing.T) {
		u := newDBUser(t)
		require.NoError(t, repo.Create(ctx, u))

		byID, err := repo.GetByID(ctx, u.ID)
		assert.NoError(t, err)
		assert.Equal(t, u.Email, byID.Email)
		assert.Equal(t, u.Phone, byID.Phone)
		assert.False(t, byID.Enrolled())

		byEmail, err := repo.GetByEmail(ctx, u.Email)
		assert.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
	})

	t.Run("Duplicate email maps to the domain error", func(t *testing.T) {
		u := newDBUser(t)
		require.NoError(t, repo.Create(ctx, u))

		dup := newDBUser(t)
		dup.Email = u.Email
		assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrEmailAlreadyExists)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		assert.ErrorIs(t, repo.SetStartDate(ctx, uuid.NewString(), time.Now()), domain.ErrUserNotFound)
	})

	t.Run("SetStartDate enrolls the user", func(t *testing.T) {
		u := newDBUser(t)
		require.NoError(t, repo.Create(ctx, u))

		start := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, repo.SetStartDate(ctx, u.ID, start))

		got, err := repo.GetByID(ctx, u.ID)
		assert.NoError(t, err)
		assert.True(t, got.Enrolled())
		assert.WithinDuration(t, start, got.StartDate, time.Second)
	})

	t.Run("ListEnrolled only returns users with a start date", func(t *testing.T) {
		cleanup(t, db)

		fresh := newDBUser(t)
		require.NoError(t, repo.Create(ctx, fresh))

		active := newDBUser(t)
		require.NoError(t, repo.Create(ctx, active))
		require.NoError(t, repo.SetStartDate(ctx, active.ID, time.Now().UTC()))

		enrolled, err := repo.ListEnrolled(ctx)
		assert.NoError(t, err)
		require.Len(t, enrolled, 1)
		assert.Equal(t, active.ID, enrolled[0].ID)
	})
}
