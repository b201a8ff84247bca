package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/acme/account-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the MongoDB-backed user directory. Emails are stored
// lower-cased so the unique index doubles as the case-insensitive
// duplicate check.
type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID             int64    `bson:"id"`
	Name           string   `bson:"name"`
	Lastname       string   `bson:"lastname"`
	Email          string   `bson:"email"`
	PasswordHash   string   `bson:"password_hash"`
	Roles          []string `bson:"roles"`
	Locked         bool     `bson:"locked"`
	FailedAttempts int      `bson:"failed_attempts"`
}

func toDoc(user *domain.User) mongoUser {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r))
	}
	return mongoUser{
		ID:             user.ID,
		Name:           user.Name,
		Lastname:       user.Lastname,
		Email:          domain.NormalizeEmail(user.Email),
		PasswordHash:   user.PasswordHash,
		Roles:          roles,
		Locked:         user.Locked,
		FailedAttempts: user.FailedAttempts,
	}
}

func fromDoc(doc mongoUser) *domain.User {
	roles := make([]domain.Role, 0, len(doc.Roles))
	for _, r := range doc.Roles {
		roles = append(roles, domain.Role(r))
	}
	return &domain.User{
		ID:             doc.ID,
		Name:           doc.Name,
		Lastname:       doc.Lastname,
		Email:          doc.Email,
		PasswordHash:   doc.PasswordHash,
		Roles:          roles,
		Locked:         doc.Locked,
		FailedAttempts: doc.FailedAttempts,
	}
}

// Create inserts the user, allocating a sequence ID unless one is already
// set (the preset path is used to restore a record after a failed audit
// append).
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	stored := user.Clone()
	stored.Email = domain.NormalizeEmail(stored.Email)
	if stored.ID == 0 {
		id, err := nextSequence(ctx, r.db, "users")
		if err != nil {
			return nil, err
		}
		stored.ID = id
	}

	if _, err := r.coll.InsertOne(ctx, toDoc(stored)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return stored, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc mongoUser
	err := r.coll.FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromDoc(doc), nil
}

// Update replaces the user's mutable fields in one atomic write keyed by ID.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	doc := toDoc(user)
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": user.ID}, bson.M{"$set": bson.M{
		"name":            doc.Name,
		"lastname":        doc.Lastname,
		"email":           doc.Email,
		"password_hash":   doc.PasswordHash,
		"roles":           doc.Roles,
		"locked":          doc.Locked,
		"failed_attempts": doc.FailedAttempts,
	}})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, email string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var doc mongoUser
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, fromDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
