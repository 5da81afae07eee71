package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/model"
)

// The in-memory repositories back the STORAGE=memory mode used in local
// development and in the test suite. They honor the same error contract as
// the mongo implementations, including the unique email constraint.

type userMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// NewUserMemoryRepository creates an in-memory UserRepository.
func NewUserMemoryRepository() UserRepository {
	return &userMemoryRepository{users: make(map[string]*model.User)}
}

func (r *userMemoryRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, ErrDuplicateKey
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID.Hex()] = &stored

	return user, nil
}

func (r *userMemoryRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *user
	return &copied, nil
}

func (r *userMemoryRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, ErrNotFound
}

func (r *userMemoryRepository) UpdateUser(
	_ context.Context,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	if params.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *params.Email {
				return nil, ErrDuplicateKey
			}
		}
		user.Email = *params.Email
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (r *userMemoryRepository) UpdateRefreshTokenHash(_ context.Context, id string, hash *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}

	user.RefreshTokenHash = hash
	user.UpdatedAt = time.Now()

	return nil
}

type bookmarkMemoryRepository struct {
	mu        sync.RWMutex
	bookmarks map[string]*model.Bookmark
	order     []string
}

// NewBookmarkMemoryRepository creates an in-memory BookmarkRepository that
// lists bookmarks in insertion order.
func NewBookmarkMemoryRepository() BookmarkRepository {
	return &bookmarkMemoryRepository{bookmarks: make(map[string]*model.Bookmark)}
}

func (r *bookmarkMemoryRepository) CreateBookmark(
	_ context.Context,
	bookmark *model.Bookmark,
) (*model.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	bookmark.ID = bson.NewObjectID()
	bookmark.CreatedAt = now
	bookmark.UpdatedAt = now

	stored := *bookmark
	r.bookmarks[bookmark.ID.Hex()] = &stored
	r.order = append(r.order, bookmark.ID.Hex())

	return bookmark, nil
}

func (r *bookmarkMemoryRepository) GetBookmark(_ context.Context, id string) (*model.Bookmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookmark, ok := r.bookmarks[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *bookmark
	return &copied, nil
}

func (r *bookmarkMemoryRepository) ListBookmarksByUser(
	_ context.Context,
	userID string,
) ([]*model.Bookmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookmarks := []*model.Bookmark{}
	for _, id := range r.order {
		bookmark, ok := r.bookmarks[id]
		if !ok || bookmark.UserID.Hex() != userID {
			continue
		}

		copied := *bookmark
		bookmarks = append(bookmarks, &copied)
	}

	return bookmarks, nil
}

func (r *bookmarkMemoryRepository) UpdateBookmark(
	_ context.Context,
	id string,
	params UpdateBookmarkParams,
) (*model.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookmark, ok := r.bookmarks[id]
	if !ok {
		return nil, ErrNotFound
	}

	if params.Title != nil {
		bookmark.Title = *params.Title
	}
	if params.Description != nil {
		bookmark.Description = params.Description
	}
	if params.Link != nil {
		bookmark.Link = *params.Link
	}
	bookmark.UpdatedAt = time.Now()

	copied := *bookmark
	return &copied, nil
}

func (r *bookmarkMemoryRepository) DeleteBookmark(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookmarks[id]; !ok {
		return ErrNotFound
	}

	delete(r.bookmarks, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

type passwordResetTokenMemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]*model.PasswordResetToken
}

// NewPasswordResetTokenMemoryRepository creates an in-memory PasswordResetTokenRepository.
func NewPasswordResetTokenMemoryRepository() PasswordResetTokenRepository {
	return &passwordResetTokenMemoryRepository{tokens: make(map[string]*model.PasswordResetToken)}
}

func (r *passwordResetTokenMemoryRepository) CreateToken(
	_ context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	token.ID = bson.NewObjectID()
	token.CreatedAt = now
	token.UpdatedAt = now
	token.Used = false

	stored := *token
	r.tokens[token.JTI] = &stored

	return token, nil
}

func (r *passwordResetTokenMemoryRepository) GetTokenByJTI(
	_ context.Context,
	jti string,
) (*model.PasswordResetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[jti]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *token
	return &copied, nil
}

func (r *passwordResetTokenMemoryRepository) MarkTokenAsUsed(_ context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[jti]
	if !ok {
		return ErrNotFound
	}

	token.Used = true
	token.UpdatedAt = time.Now()

	return nil
}

func (r *passwordResetTokenMemoryRepository) InvalidateUserTokens(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, token := range r.tokens {
		if token.UserID.Hex() == userID && !token.Used {
			token.Used = true
			token.UpdatedAt = time.Now()
		}
	}

	return nil
}
