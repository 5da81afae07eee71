package payload

import (
	"time"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/model"
)

// UpdateUserRequest is the body of PATCH /users. All fields are optional;
// only the fields present in the JSON body are applied.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,password"`
}

// UserResponse is the client-facing view of a user. The password hash and
// refresh token hash are deliberately absent.
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a user model to its client-facing view.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID.Hex(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
