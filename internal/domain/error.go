package domain

import "errors"

var (
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNoOrigin           = errors.New("forward origin unknown")
	ErrUnsupportedContent = errors.New("unsupported message content")
)
