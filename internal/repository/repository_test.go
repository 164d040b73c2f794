package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/db/bunx"
	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
	"github.com/jagan25-mj/startup-connect-hub/internal/migrations"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	ctx := context.Background()
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *bun.DB, role auth.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		FullName:     "Test User",
		Role:         role,
		Active:       true,
	}
	require.NoError(t, NewBunUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestStartup(t *testing.T, db *bun.DB, ownerID string) *models.Startup {
	t.Helper()

	startup := &models.Startup{
		Name:     "Startup " + uuid.NewString()[:8],
		Industry: "fintech",
		Stage:    "seed",
		OwnerID:  ownerID,
	}
	require.NoError(t, NewBunStartupRepository(db).Create(context.Background(), startup))
	return startup
}

func TestBunUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunUserRepository(db)
	ctx := context.Background()

	t.Run("create assigns an ID and lowercases the email", func(t *testing.T) {
		user := &models.User{
			Email:        "MixedCase@Example.com",
			PasswordHash: "x",
			FullName:     "Ada",
			Role:         auth.RoleFounder,
			Active:       true,
			Skills:       models.SkillList{"go"},
		}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotEmpty(t, user.ID)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "mixedcase@example.com", got.Email)
		assert.Equal(t, models.SkillList{"go"}, got.Skills)
	})

	t.Run("duplicate email", func(t *testing.T) {
		user := createTestUser(t, db, auth.RoleTalent)

		dup := &models.User{
			Email:        user.Email,
			PasswordHash: "x",
			Role:         auth.RoleTalent,
			Active:       true,
		}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("lookup by email is case-insensitive", func(t *testing.T) {
		user := createTestUser(t, db, auth.RoleTalent)

		got, err := repo.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("missing lookups return ErrNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.GetByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("active-scoped lookup hides deactivated accounts", func(t *testing.T) {
		user := createTestUser(t, db, auth.RoleTalent)

		got, err := repo.GetActiveByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		user.Active = false
		require.NoError(t, repo.Update(ctx, user))

		_, err = repo.GetActiveByID(ctx, user.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		// The unfiltered lookup still resolves the account.
		got, err = repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)
	})

	t.Run("update persists profile changes", func(t *testing.T) {
		user := createTestUser(t, db, auth.RoleTalent)
		user.Bio = "updated bio"
		user.Skills = models.SkillList{"go", "sql"}
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "updated bio", got.Bio)
		assert.Equal(t, models.SkillList{"go", "sql"}, got.Skills)
	})

	t.Run("list filters inactive users and by role", func(t *testing.T) {
		founderUser := createTestUser(t, db, auth.RoleFounder)
		inactive := createTestUser(t, db, auth.RoleFounder)
		inactive.Active = false
		require.NoError(t, repo.Update(ctx, inactive))

		founders, err := repo.List(ctx, auth.RoleFounder)
		require.NoError(t, err)

		ids := make(map[string]bool)
		for _, u := range founders {
			assert.Equal(t, auth.RoleFounder, u.Role)
			assert.True(t, u.Active)
			ids[u.ID] = true
		}
		assert.True(t, ids[founderUser.ID])
		assert.False(t, ids[inactive.ID])
	})
}

func TestBunStartupRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunStartupRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, auth.RoleFounder)

	t.Run("create and read back with owner loaded", func(t *testing.T) {
		startup := createTestStartup(t, db, owner.ID)

		got, err := repo.GetByID(ctx, startup.ID)
		require.NoError(t, err)
		assert.Equal(t, startup.Name, got.Name)
		require.NotNil(t, got.Owner)
		assert.Equal(t, owner.Email, got.Owner.Email)
	})

	t.Run("GetOwnerID resolves only the owner", func(t *testing.T) {
		startup := createTestStartup(t, db, owner.ID)

		ownerID, err := repo.GetOwnerID(ctx, startup.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, ownerID)

		_, err = repo.GetOwnerID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update and delete report missing rows", func(t *testing.T) {
		startup := createTestStartup(t, db, owner.ID)
		startup.Stage = "series-a"
		require.NoError(t, repo.Update(ctx, startup))

		got, err := repo.GetByID(ctx, startup.ID)
		require.NoError(t, err)
		assert.Equal(t, "series-a", got.Stage)

		require.NoError(t, repo.Delete(ctx, startup.ID))
		assert.ErrorIs(t, repo.Delete(ctx, startup.ID), ErrNotFound)

		ghost := &models.Startup{ID: uuid.NewString(), Name: "Ghost", OwnerID: owner.ID}
		assert.ErrorIs(t, repo.Update(ctx, ghost), ErrNotFound)
	})

	t.Run("list filters", func(t *testing.T) {
		other := createTestUser(t, db, auth.RoleFounder)
		mine := createTestStartup(t, db, owner.ID)
		theirs := createTestStartup(t, db, other.ID)

		byOwner, err := repo.List(ctx, StartupFilter{OwnerID: owner.ID})
		require.NoError(t, err)
		ids := make(map[string]bool)
		for _, s := range byOwner {
			assert.Equal(t, owner.ID, s.OwnerID)
			ids[s.ID] = true
		}
		assert.True(t, ids[mine.ID])
		assert.False(t, ids[theirs.ID])

		byIndustry, err := repo.List(ctx, StartupFilter{Industry: "FinTech"})
		require.NoError(t, err)
		assert.NotEmpty(t, byIndustry)
		for _, s := range byIndustry {
			assert.Equal(t, "fintech", s.Industry)
		}

		none, err := repo.List(ctx, StartupFilter{Stage: "ipo"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestBunInterestRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunInterestRepository(db)
	ctx := context.Background()

	founderUser := createTestUser(t, db, auth.RoleFounder)
	talentUser := createTestUser(t, db, auth.RoleTalent)
	startup := createTestStartup(t, db, founderUser.ID)

	t.Run("create, exists, delete", func(t *testing.T) {
		interest := &models.StartupInterest{UserID: talentUser.ID, StartupID: startup.ID}
		require.NoError(t, repo.Create(ctx, interest))
		assert.NotEmpty(t, interest.ID)

		exists, err := repo.Exists(ctx, talentUser.ID, startup.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.Delete(ctx, talentUser.ID, startup.ID))

		exists, err = repo.Exists(ctx, talentUser.ID, startup.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unique index rejects duplicates", func(t *testing.T) {
		first := &models.StartupInterest{UserID: talentUser.ID, StartupID: startup.ID}
		require.NoError(t, repo.Create(ctx, first))

		second := &models.StartupInterest{UserID: talentUser.ID, StartupID: startup.ID}
		err := repo.Create(ctx, second)
		assert.ErrorIs(t, err, ErrDuplicateInterest)

		require.NoError(t, repo.Delete(ctx, talentUser.ID, startup.ID))
	})

	t.Run("foreign-key failure is not reported as a duplicate", func(t *testing.T) {
		orphan := &models.StartupInterest{UserID: talentUser.ID, StartupID: uuid.NewString()}
		err := repo.Create(ctx, orphan)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateInterest)
	})

	t.Run("deleting an absent interest returns ErrNotFound", func(t *testing.T) {
		err := repo.Delete(ctx, talentUser.ID, startup.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("listings load their relations", func(t *testing.T) {
		interest := &models.StartupInterest{UserID: talentUser.ID, StartupID: startup.ID}
		require.NoError(t, repo.Create(ctx, interest))

		byStartup, err := repo.ListByStartup(ctx, startup.ID)
		require.NoError(t, err)
		require.Len(t, byStartup, 1)
		require.NotNil(t, byStartup[0].User)
		assert.Equal(t, talentUser.Email, byStartup[0].User.Email)

		byUser, err := repo.ListByUser(ctx, talentUser.ID)
		require.NoError(t, err)
		require.Len(t, byUser, 1)
		require.NotNil(t, byUser[0].Startup)
		assert.Equal(t, startup.Name, byUser[0].Startup.Name)
	})

	t.Run("interests cascade with the startup", func(t *testing.T) {
		doomed := createTestStartup(t, db, founderUser.ID)
		interest := &models.StartupInterest{UserID: talentUser.ID, StartupID: doomed.ID}
		require.NoError(t, repo.Create(ctx, interest))

		require.NoError(t, NewBunStartupRepository(db).Delete(ctx, doomed.ID))

		exists, err := repo.Exists(ctx, talentUser.ID, doomed.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
