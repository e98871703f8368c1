package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister    = "user registered successfully"
	MessageSuccessLogin       = "login successful"
	MessageSuccessGetUser     = "success get user"
	MessageFailedRegister     = "failed to register user"
	MessageFailedLogin        = "failed to login"
	MessageFailedGetUser      = "failed to get user"
	MessageInvalidCredentials = "invalid credentials"
	MessageAuthorTaken        = "author name already taken"
	MessageUserTaken          = "username or email already registered"

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserTaken          = errors.New("username or email already registered")
	ErrAuthorClaimed      = errors.New("author name already in use")
)

type (
	RegisterRequest struct {
		Name      string `json:"name" validate:"required,min=3,max=100"`
		Email     string `json:"email" validate:"required,email,max=255"`
		Password  string `json:"password" validate:"required,min=8,max=72"`
		FirstName string `json:"first_name" validate:"required,max=100"`
		LastName  string `json:"last_name" validate:"required,max=100"`
	}

	LoginRequest struct {
		Login    string `json:"login" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	UserResponse struct {
		ID        uint       `json:"id"`
		Name      string     `json:"name"`
		Email     string     `json:"email"`
		FirstName string     `json:"first_name"`
		LastName  string     `json:"last_name"`
		Role      string     `json:"role"`
		AuthorID  uint       `json:"author_id,omitempty"`
		LastLogin *time.Time `json:"last_login,omitempty"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
)
