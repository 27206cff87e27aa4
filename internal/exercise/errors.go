package exercise

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateName  = errors.New("an exercise with that name already exists")
	ErrEmptyName      = errors.New("exercise name is empty")
	ErrEmptyPrompt    = errors.New("item prompt is empty")
	ErrMissingAnswer  = errors.New("item has no usable answer")
	ErrMissingOptions = errors.New("item options are incomplete")
	ErrInvalidStats   = errors.New("item stats are inconsistent")
)
