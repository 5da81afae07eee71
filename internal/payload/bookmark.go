package payload

import (
	"time"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/model"
)

// CreateBookmarkRequest is the body of POST /bookmarks.
type CreateBookmarkRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description" validate:"omitempty"`
	Link        string  `json:"link"        validate:"required,url"`
}

// UpdateBookmarkRequest is the body of PATCH /bookmarks/{id}. Only the
// fields present in the JSON body are applied.
type UpdateBookmarkRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty"`
	Link        *string `json:"link"        validate:"omitempty,url"`
}

// BookmarkResponse is the client-facing view of a bookmark.
type BookmarkResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewBookmarkResponse maps a bookmark model to its client-facing view.
func NewBookmarkResponse(bookmark *model.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          bookmark.ID.Hex(),
		UserID:      bookmark.UserID.Hex(),
		Title:       bookmark.Title,
		Description: bookmark.Description,
		Link:        bookmark.Link,
		CreatedAt:   bookmark.CreatedAt,
		UpdatedAt:   bookmark.UpdatedAt,
	}
}

// NewBookmarkListResponse maps a slice of bookmark models.
func NewBookmarkListResponse(bookmarks []*model.Bookmark) []BookmarkResponse {
	responses := make([]BookmarkResponse, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		responses = append(responses, NewBookmarkResponse(bookmark))
	}

	return responses
}
