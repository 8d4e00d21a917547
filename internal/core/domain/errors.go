package domain

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrOAuthStateNotFound = errors.New("oauth state not found or expired")
	ErrTokenRevoked       = errors.New("token has been revoked")
)
