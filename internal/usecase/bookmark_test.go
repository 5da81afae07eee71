package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signUpUser registers a user and returns its ID.
func signUpUser(t *testing.T, f *fixture, email string) string {
	t.Helper()

	_, err := f.auth.SignUp(context.Background(), SignUpParams{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "Password1",
	})
	require.NoError(t, err)

	user, err := f.userRepo.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)

	return user.ID.Hex()
}

func strPtr(s string) *string { return &s }

func TestCreateAndListBookmarks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID := signUpUser(t, f, "john@gmail.com")

	first, err := f.bookmarks.CreateBookmark(ctx, userID, CreateBookmarkParams{
		Title: "first",
		Link:  "https://example.com/1",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, first.UserID.Hex())

	_, err = f.bookmarks.CreateBookmark(ctx, userID, CreateBookmarkParams{
		Title:       "second",
		Description: strPtr("with description"),
		Link:        "https://example.com/2",
	})
	require.NoError(t, err)

	listed, err := f.bookmarks.ListBookmarks(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "first", listed[0].Title)
	assert.Equal(t, "second", listed[1].Title)
}

func TestGetBookmark_OwnershipEnforced(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := signUpUser(t, f, "owner@gmail.com")
	other := signUpUser(t, f, "other@gmail.com")

	bookmark, err := f.bookmarks.CreateBookmark(ctx, owner, CreateBookmarkParams{
		Title: "private",
		Link:  "https://example.com",
	})
	require.NoError(t, err)

	got, err := f.bookmarks.GetBookmark(ctx, owner, bookmark.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, bookmark.ID, got.ID)

	// Another user's bookmark looks exactly like a missing one.
	_, err = f.bookmarks.GetBookmark(ctx, other, bookmark.ID.Hex())
	assert.ErrorIs(t, err, ErrBookmarkNotFound)

	_, err = f.bookmarks.GetBookmark(ctx, owner, "ffffffffffffffffffffffff")
	assert.ErrorIs(t, err, ErrBookmarkNotFound)
}

func TestUpdateBookmark_PartialFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID := signUpUser(t, f, "john@gmail.com")

	bookmark, err := f.bookmarks.CreateBookmark(ctx, userID, CreateBookmarkParams{
		Title:       "t",
		Description: strPtr("d"),
		Link:        "https://x",
	})
	require.NoError(t, err)

	updated, err := f.bookmarks.UpdateBookmark(ctx, userID, bookmark.ID.Hex(), UpdateBookmarkParams{
		Title: strPtr("t2"),
	})
	require.NoError(t, err)

	assert.Equal(t, "t2", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "d", *updated.Description)
	assert.Equal(t, "https://x", updated.Link)
}

func TestUpdateBookmark_WrongOwnerLeavesRecordUnchanged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := signUpUser(t, f, "owner@gmail.com")
	other := signUpUser(t, f, "other@gmail.com")

	bookmark, err := f.bookmarks.CreateBookmark(ctx, owner, CreateBookmarkParams{
		Title: "original",
		Link:  "https://example.com",
	})
	require.NoError(t, err)

	_, err = f.bookmarks.UpdateBookmark(ctx, other, bookmark.ID.Hex(), UpdateBookmarkParams{
		Title: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	unchanged, err := f.bookmarks.GetBookmark(ctx, owner, bookmark.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "original", unchanged.Title)
}

func TestDeleteBookmark(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := signUpUser(t, f, "owner@gmail.com")
	other := signUpUser(t, f, "other@gmail.com")

	bookmark, err := f.bookmarks.CreateBookmark(ctx, owner, CreateBookmarkParams{
		Title: "doomed",
		Link:  "https://example.com",
	})
	require.NoError(t, err)

	err = f.bookmarks.DeleteBookmark(ctx, other, bookmark.ID.Hex())
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, f.bookmarks.DeleteBookmark(ctx, owner, bookmark.ID.Hex()))

	// Deleting again is a denied write, not a silent no-op.
	err = f.bookmarks.DeleteBookmark(ctx, owner, bookmark.ID.Hex())
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.bookmarks.GetBookmark(ctx, owner, bookmark.ID.Hex())
	assert.ErrorIs(t, err, ErrBookmarkNotFound)
}
