package users

import (
	"context"
	"errors"

	"github.com/conduitapp/articled/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("user not found")

// UserRepository defines the persistence operations the article service
// needs from the user directory. Lookups return (nil, nil) when the user
// does not exist; an absent user is an ordinary answer here, not an error.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	AddFavorite(ctx context.Context, userID, articleID string) error
	RemoveFavorite(ctx context.Context, userID, articleID string) error
	RemoveFavoriteFromAll(ctx context.Context, articleID string) error
	Follow(ctx context.Context, userID, targetID string) error
	Unfollow(ctx context.Context, userID, targetID string) error
}

// MongoUserRepository implements UserRepository using MongoDB.
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository wraps the collection and ensures the unique
// username index.
func NewMongoUserRepository(col *mongo.Collection) *MongoUserRepository {
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoUserRepository{col: col}
}

func (r *MongoUserRepository) getOne(ctx context.Context, q bson.M) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, q).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) findMany(ctx context.Context, q bson.M) ([]*models.User, error) {
	cur, err := r.col.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.User{}
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

func (r *MongoUserRepository) FindByUsernames(ctx context.Context, usernames []string) ([]*models.User, error) {
	if len(usernames) == 0 {
		return []*models.User{}, nil
	}
	return r.findMany(ctx, bson.M{"username": bson.M{"$in": usernames}})
}

func (r *MongoUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoUserRepository) updateOne(ctx context.Context, userID string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) AddFavorite(ctx context.Context, userID, articleID string) error {
	return r.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"favorites": articleID}})
}

func (r *MongoUserRepository) RemoveFavorite(ctx context.Context, userID, articleID string) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"favorites": articleID}})
}

// RemoveFavoriteFromAll purges a deleted article from every user's
// favorites view so no dangling references survive an article delete.
func (r *MongoUserRepository) RemoveFavoriteFromAll(ctx context.Context, articleID string) error {
	_, err := r.col.UpdateMany(ctx, bson.M{"favorites": articleID}, bson.M{"$pull": bson.M{"favorites": articleID}})
	return err
}

func (r *MongoUserRepository) Follow(ctx context.Context, userID, targetID string) error {
	return r.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"following": targetID}})
}

func (r *MongoUserRepository) Unfollow(ctx context.Context, userID, targetID string) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"following": targetID}})
}
