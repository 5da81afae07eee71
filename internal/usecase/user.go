package usecase

import (
	"context"
	"errors"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/model"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/repository"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/security"
)

// UserUsecase defines the interface for user profile operations.
type UserUsecase interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	UpdateUser(ctx context.Context, userID string, params UpdateUserParams) (*model.User, error)
}

// UpdateUserParams defines the optional profile fields to update. Only the
// fields that are not nil are applied; a new password is re-hashed.
type UpdateUserParams struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// ErrUserNotFound is returned when the authenticated user no longer exists.
var ErrUserNotFound = errors.New("user not found")

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase creates a new instance of UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateUser(
	ctx context.Context,
	userID string,
	params UpdateUserParams,
) (*model.User, error) {
	repoParams := repository.UpdateUserParams{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
	}

	if params.Password != nil {
		passwordHash, err := security.HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		repoParams.PasswordHash = &passwordHash
	}

	// An empty patch is a read.
	if repoParams.FirstName == nil && repoParams.LastName == nil &&
		repoParams.Email == nil && repoParams.PasswordHash == nil {
		return u.GetUser(ctx, userID)
	}

	user, err := u.userRepo.UpdateUser(ctx, userID, repoParams)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	return user, nil
}
