package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/model"
)

// BookmarkRepository defines the interface for bookmark-related database operations.
type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error)
	GetBookmark(ctx context.Context, id string) (*model.Bookmark, error)
	ListBookmarksByUser(ctx context.Context, userID string) ([]*model.Bookmark, error)
	UpdateBookmark(ctx context.Context, id string, params UpdateBookmarkParams) (*model.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) error
}

// UpdateBookmarkParams defines the optional parameters for updating a bookmark.
// Only the fields that are not nil will be updated. The owning user is
// deliberately absent, ownership never changes after creation.
type UpdateBookmarkParams struct {
	Title       *string
	Description *string
	Link        *string
}

const bookmarkCollection = "bookmarks"

type bookmarkMongoRepository struct {
	db *mongo.Database
}

// NewBookmarkMongoRepository creates the bookmarks collection repository and
// ensures the owner index exists.
func NewBookmarkMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) BookmarkRepository {
	collection := db.Collection(bookmarkCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bookmark indexes")
	}

	return &bookmarkMongoRepository{db: db}
}

func (r *bookmarkMongoRepository) CreateBookmark(
	ctx context.Context,
	bookmark *model.Bookmark,
) (*model.Bookmark, error) {
	now := time.Now()
	bookmark.CreatedAt = now
	bookmark.UpdatedAt = now

	result, err := r.db.Collection(bookmarkCollection).InsertOne(ctx, bookmark)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		bookmark.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return bookmark, nil
}

func (r *bookmarkMongoRepository) GetBookmark(ctx context.Context, id string) (*model.Bookmark, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	result := r.db.Collection(bookmarkCollection).FindOne(ctx, bson.M{"_id": objectID})

	var bookmark model.Bookmark
	if err := result.Decode(&bookmark); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &bookmark, nil
}

func (r *bookmarkMongoRepository) ListBookmarksByUser(
	ctx context.Context,
	userID string,
) ([]*model.Bookmark, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.db.Collection(bookmarkCollection).Find(ctx, bson.M{"user_id": objectID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookmarks := []*model.Bookmark{}
	for cursor.Next(ctx) {
		var bookmark model.Bookmark
		if err := cursor.Decode(&bookmark); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, &bookmark)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return bookmarks, nil
}

func (r *bookmarkMongoRepository) UpdateBookmark(
	ctx context.Context,
	id string,
	params UpdateBookmarkParams,
) (*model.Bookmark, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	// Build update query
	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Link != nil {
		updateMap["link"] = *params.Link
	}

	if len(updateMap) == 0 {
		return r.GetBookmark(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(bookmarkCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var bookmark model.Bookmark
	if err := result.Decode(&bookmark); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &bookmark, nil
}

func (r *bookmarkMongoRepository) DeleteBookmark(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.db.Collection(bookmarkCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
