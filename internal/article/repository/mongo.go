package repository

import (
	"context"
	"time"

	"github.com/conduitapp/articled/internal/article"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements ArticleRepository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

// NewMongoRepo wraps the collection and ensures the unique slug index that
// makes Insert collision detection atomic.
func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

// filterQuery translates a Filter into a Mongo query document.
func filterQuery(f article.Filter) bson.M {
	q := bson.M{}
	if len(f.Tags) > 0 {
		q["tagList"] = bson.M{"$in": f.Tags}
	}
	if f.AuthorIDs != nil {
		q["authorId"] = bson.M{"$in": f.AuthorIDs}
	}
	if f.IDs != nil {
		q["_id"] = bson.M{"$in": f.IDs}
	}
	return q
}

func (m *MongoRepo) Find(ctx context.Context, f article.Filter, limit, offset int64) ([]*article.Article, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cur, err := m.col.Find(ctx, filterQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*article.Article{}
	for cur.Next(ctx) {
		var a article.Article
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Count(ctx context.Context, f article.Filter) (int64, error) {
	return m.col.CountDocuments(ctx, filterQuery(f))
}

func (m *MongoRepo) GetBySlug(ctx context.Context, slug string) (*article.Article, error) {
	var a article.Article
	if err := m.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (m *MongoRepo) Insert(ctx context.Context, a *article.Article) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := m.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (m *MongoRepo) Update(ctx context.Context, slug string, ch article.Changes) (*article.Article, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if ch.Title != nil {
		set["title"] = *ch.Title
	}
	if ch.Description != nil {
		set["description"] = *ch.Description
	}
	if ch.Body != nil {
		set["body"] = *ch.Body
	}
	if ch.TagList != nil {
		set["tagList"] = *ch.TagList
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a article.Article
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, bson.M{"$set": set}, opts).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (m *MongoRepo) DeleteBySlug(ctx context.Context, slug string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) AddFavorite(ctx context.Context, slug, userID string) (*article.Article, error) {
	return m.favoriteUpdate(ctx, slug, bson.M{"$addToSet": bson.M{"favoritedBy": userID}})
}

func (m *MongoRepo) RemoveFavorite(ctx context.Context, slug, userID string) (*article.Article, error) {
	return m.favoriteUpdate(ctx, slug, bson.M{"$pull": bson.M{"favoritedBy": userID}})
}

func (m *MongoRepo) favoriteUpdate(ctx context.Context, slug string, update bson.M) (*article.Article, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a article.Article
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
