package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// AdminAction is a role/ban toggle applied to a user account
type AdminAction string

const (
	ActionPromote AdminAction = "promote"
	ActionDemote  AdminAction = "demote"
	ActionBan     AdminAction = "ban"
	ActionUnban   AdminAction = "unban"
)

// User represents a customer or admin account
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Phone        string    `json:"phone" db:"phone"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	IsBanned     bool      `json:"is_banned" db:"is_banned"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserRegisterRequest represents the data needed to register a new user
type UserRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// UserLoginRequest represents login credentials
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserAdminActionRequest represents an admin role/ban mutation
type UserAdminActionRequest struct {
	UserID int         `json:"userId"`
	Action AdminAction `json:"action"`
}

var userEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates user registration data
func (req *UserRegisterRequest) Validate() error {
	if err := validateUserEmail(req.Email); err != nil {
		return err
	}

	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if strings.TrimSpace(req.FullName) == "" {
		return errors.New("full name is required")
	}

	if len(req.FullName) > 255 {
		return errors.New("full name must be less than 255 characters")
	}

	return nil
}

// Validate validates login credentials
func (req *UserLoginRequest) Validate() error {
	if err := validateUserEmail(req.Email); err != nil {
		return err
	}

	if req.Password == "" {
		return errors.New("password is required")
	}

	return nil
}

// Validate validates an admin action request
func (req *UserAdminActionRequest) Validate() error {
	if req.UserID <= 0 {
		return errors.New("user id is required")
	}

	switch req.Action {
	case ActionPromote, ActionDemote, ActionBan, ActionUnban:
		return nil
	default:
		return errors.New("invalid admin action")
	}
}

// validateUserEmail validates an email address
func validateUserEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if len(email) > 255 {
		return errors.New("email must be less than 255 characters")
	}

	if !userEmailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}

	return nil
}

// CanAccess returns true if the account is allowed to use the store
func (u *User) CanAccess() bool {
	return !u.IsBanned
}
