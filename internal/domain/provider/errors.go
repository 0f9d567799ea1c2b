package provider

import "errors"

var (
	ErrProviderNotFound   = errors.New("service provider not found")
	ErrProfileNotFound    = errors.New("service provider profile not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnknownService     = errors.New("unknown service id")
)
