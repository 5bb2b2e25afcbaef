package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/brandbook/entries-api/internal/core/domain"
)

const testNS = "brandbook.users"

func userDoc(id primitive.ObjectID, version int64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Alice"},
		{Key: "email", Value: "alice@example.com"},
		{Key: "password", Value: "$2a$08$hash"},
		{Key: "entries", Value: bson.A{
			bson.D{{Key: "id", Value: "e1"}, {Key: "name", Value: "Shoe"}, {Key: "about_brand", Value: "Runners"}},
		}},
		{Key: "version", Value: version},
		{Key: "created_at", Value: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{Key: "updated_at", Value: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
}

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserRepository(mt.DB, false)

		created, err := repo.Create(context.Background(), &domain.User{
			Name:         "Alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$08$hash",
		})
		require.NoError(mt, err)
		assert.Len(mt, created.ID, 24)
		assert.Equal(mt, "alice@example.com", created.Email)
		assert.NotNil(mt, created.Entries)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: brandbook.users index: email_unique",
		}))
		repo := NewUserRepository(mt.DB, false)

		_, err := repo.Create(context.Background(), &domain.User{Name: "A", Email: "alice@example.com"})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})
}

func TestUserRepository_Find(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, userDoc(id, 3)))
		repo := NewUserRepository(mt.DB, false)

		user, err := repo.FindByEmail(context.Background(), "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), user.ID)
		assert.Equal(mt, "$2a$08$hash", user.PasswordHash)
		assert.Equal(mt, int64(3), user.Version)
		require.Len(mt, user.Entries, 1)
		assert.Equal(mt, domain.Entry{ID: "e1", Name: "Shoe", AboutBrand: "Runners"}, user.Entries[0])
	})

	mt.Run("by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))
		repo := NewUserRepository(mt.DB, false)

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, false)

		_, err := repo.FindByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_SaveEntries(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("bumps version", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewUserRepository(mt.DB, false)
		user := &domain.User{ID: primitive.NewObjectID().Hex(), Version: 2, Entries: domain.Entries{{ID: "e1", Name: "Shoe"}}}

		require.NoError(mt, repo.SaveEntries(context.Background(), user))
		assert.Equal(mt, int64(3), user.Version)
		assert.False(mt, user.UpdatedAt.IsZero())
	})

	mt.Run("missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewUserRepository(mt.DB, false)

		err := repo.SaveEntries(context.Background(), &domain.User{ID: primitive.NewObjectID().Hex()})
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("stale version with optimistic lock", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewUserRepository(mt.DB, true)
		user := &domain.User{ID: primitive.NewObjectID().Hex(), Version: 7}

		err := repo.SaveEntries(context.Background(), user)
		assert.ErrorIs(mt, err, domain.ErrConcurrentUpdate)
		assert.Equal(mt, int64(7), user.Version)
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updates", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewUserRepository(mt.DB, false)

		assert.NoError(mt, repo.UpdatePassword(context.Background(), primitive.NewObjectID().Hex(), "$2a$08$new"))
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewUserRepository(mt.DB, false)

		err := repo.UpdatePassword(context.Background(), primitive.NewObjectID().Hex(), "$2a$08$new")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates unique email index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserRepository(mt.DB, false)

		require.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
