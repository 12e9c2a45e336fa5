package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player id already exists")
	ErrUsernameTaken  = errors.New("username already taken")

	// Relation errors
	ErrRelationNotFound = errors.New("relation not found")
)
