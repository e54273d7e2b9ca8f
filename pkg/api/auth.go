package api

import "google.golang.org/protobuf/types/known/timestamppb"

type User struct {
	ID          string                 `json:"id"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"display_name"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User      *User                  `json:"user"`
	Token     string                 `json:"token"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
