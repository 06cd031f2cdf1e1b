package domain

import "errors"

// Signup errors
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrAdminSignup   = errors.New("admin accounts cannot be self-registered")
	ErrInvalidRole   = errors.New("invalid role")
)

// Authentication errors. ErrInvalidCredentials deliberately covers both an
// unknown email and a wrong password; ErrUnauthorized covers every token
// failure (expired, forged, unknown subject) so callers cannot tell them apart.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Authorization errors
var (
	ErrNotOwner = errors.New("not the owner of this resource")
)

// Lookup errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

// Purchase errors
var (
	ErrEmptyCourseList = errors.New("course list is empty")
)
