package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/model"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/repository"
)

// BookmarkUsecase defines the interface for bookmark CRUD. Every operation
// that touches an existing bookmark verifies ownership first.
type BookmarkUsecase interface {
	ListBookmarks(ctx context.Context, userID string) ([]*model.Bookmark, error)
	GetBookmark(ctx context.Context, userID, bookmarkID string) (*model.Bookmark, error)
	CreateBookmark(ctx context.Context, userID string, params CreateBookmarkParams) (*model.Bookmark, error)
	UpdateBookmark(ctx context.Context, userID, bookmarkID string, params UpdateBookmarkParams) (*model.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, bookmarkID string) error
}

// CreateBookmarkParams defines the parameters for creating a bookmark.
type CreateBookmarkParams struct {
	Title       string
	Description *string
	Link        string
}

// UpdateBookmarkParams defines the optional fields of a partial bookmark
// update.
type UpdateBookmarkParams struct {
	Title       *string
	Description *string
	Link        *string
}

var (
	// ErrBookmarkNotFound is returned by reads when the bookmark is absent
	// or owned by another user; the two cases are indistinguishable so the
	// existence of other users' bookmarks does not leak.
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// ErrAccessDenied is returned by writes when the bookmark is absent or
	// owned by another user.
	ErrAccessDenied = errors.New("access to the resource denied")
)

type bookmarkUsecase struct {
	bookmarkRepo repository.BookmarkRepository
}

// NewBookmarkUsecase creates a new instance of BookmarkUsecase.
func NewBookmarkUsecase(bookmarkRepo repository.BookmarkRepository) BookmarkUsecase {
	return &bookmarkUsecase{bookmarkRepo: bookmarkRepo}
}

func (u *bookmarkUsecase) ListBookmarks(ctx context.Context, userID string) ([]*model.Bookmark, error) {
	return u.bookmarkRepo.ListBookmarksByUser(ctx, userID)
}

func (u *bookmarkUsecase) GetBookmark(ctx context.Context, userID, bookmarkID string) (*model.Bookmark, error) {
	bookmark, err := u.loadOwnedBookmark(ctx, userID, bookmarkID)
	if err != nil {
		return nil, ErrBookmarkNotFound
	}

	return bookmark, nil
}

func (u *bookmarkUsecase) CreateBookmark(
	ctx context.Context,
	userID string,
	params CreateBookmarkParams,
) (*model.Bookmark, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return u.bookmarkRepo.CreateBookmark(ctx, &model.Bookmark{
		UserID:      ownerID,
		Title:       params.Title,
		Description: params.Description,
		Link:        params.Link,
	})
}

func (u *bookmarkUsecase) UpdateBookmark(
	ctx context.Context,
	userID, bookmarkID string,
	params UpdateBookmarkParams,
) (*model.Bookmark, error) {
	if _, err := u.loadOwnedBookmark(ctx, userID, bookmarkID); err != nil {
		return nil, ErrAccessDenied
	}

	bookmark, err := u.bookmarkRepo.UpdateBookmark(ctx, bookmarkID, repository.UpdateBookmarkParams{
		Title:       params.Title,
		Description: params.Description,
		Link:        params.Link,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccessDenied
		}

		return nil, err
	}

	return bookmark, nil
}

func (u *bookmarkUsecase) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	if _, err := u.loadOwnedBookmark(ctx, userID, bookmarkID); err != nil {
		return ErrAccessDenied
	}

	if err := u.bookmarkRepo.DeleteBookmark(ctx, bookmarkID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccessDenied
		}

		return err
	}

	return nil
}

// loadOwnedBookmark loads the bookmark and checks that it belongs to userID.
func (u *bookmarkUsecase) loadOwnedBookmark(
	ctx context.Context,
	userID, bookmarkID string,
) (*model.Bookmark, error) {
	bookmark, err := u.bookmarkRepo.GetBookmark(ctx, bookmarkID)
	if err != nil {
		return nil, err
	}

	if bookmark.UserID.Hex() != userID {
		return nil, repository.ErrNotFound
	}

	return bookmark, nil
}
