package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brandbook/entries-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository on the users collection.
// Entries are embedded in the user document.
type UserRepository struct {
	col            *mongo.Collection
	optimisticLock bool
}

// NewUserRepository returns a repository. With optimisticLock set,
// SaveEntries only succeeds when the stored version equals the one read.
func NewUserRepository(db *mongo.Database, optimisticLock bool) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), optimisticLock: optimisticLock}
}

type mongoEntry struct {
	ID           string `bson:"id"`
	Name         string `bson:"name"`
	AboutBrand   string `bson:"about_brand,omitempty"`
	BrandImage   string `bson:"brand_image"`
	AboutProduct string `bson:"about_product,omitempty"`
	ProductImage string `bson:"product_image"`
	ProductName  string `bson:"product_name"`
}

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Entries   []mongoEntry       `bson:"entries"`
	Version   int64              `bson:"version"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Create inserts a new user document. A unique index violation on email is
// reported as domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toDomainUser(doc), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// UpdatePassword stores a new hash; only the password field is written.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"password":   passwordHash,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SaveEntries replaces the whole entries array and bumps the version.
func (r *UserRepository) SaveEntries(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if r.optimisticLock {
		filter["version"] = user.Version
	}
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"entries":    toMongoEntries(user.Entries),
			"updated_at": now,
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	if res.MatchedCount == 0 {
		if r.optimisticLock {
			return domain.ErrConcurrentUpdate
		}
		return domain.ErrUserNotFound
	}

	user.Version++
	user.UpdatedAt = now
	return nil
}

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(mu), nil
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Entries:   toMongoEntries(u.Entries),
		Version:   u.Version,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toMongoEntries(es domain.Entries) []mongoEntry {
	out := make([]mongoEntry, len(es))
	for i, e := range es {
		out[i] = mongoEntry{
			ID:           e.ID,
			Name:         e.Name,
			AboutBrand:   e.AboutBrand,
			BrandImage:   e.BrandImage,
			AboutProduct: e.AboutProduct,
			ProductImage: e.ProductImage,
			ProductName:  e.ProductName,
		}
	}
	return out
}

func toDomainUser(mu mongoUser) *domain.User {
	entries := make(domain.Entries, len(mu.Entries))
	for i, e := range mu.Entries {
		entries[i] = domain.Entry{
			ID:           e.ID,
			Name:         e.Name,
			AboutBrand:   e.AboutBrand,
			BrandImage:   e.BrandImage,
			AboutProduct: e.AboutProduct,
			ProductImage: e.ProductImage,
			ProductName:  e.ProductName,
		}
	}
	return &domain.User{
		ID:           mu.ID.Hex(),
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.Password,
		Entries:      entries,
		Version:      mu.Version,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}
