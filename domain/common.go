package domain

import (
	"errors"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageNotAuthorized        = "Not authorized"

	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

// Requester identifies who is asking for a write; authorization decisions use only this.
type Requester struct {
	UserID uint
	Role   string
}

func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// MutationResult is the discriminated outcome of an update or delete.
type MutationResult struct {
	Success bool      `json:"success"`
	ID      uint      `json:"id,omitempty"`
	Message string    `json:"message,omitempty"`
	Err     *AppError `json:"-"`
}

func Succeeded(id uint) MutationResult {
	return MutationResult{Success: true, ID: id}
}

func Failed(err *AppError) MutationResult {
	return MutationResult{Success: false, Message: err.Message, Err: err}
}
