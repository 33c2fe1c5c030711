package models

import "errors"

var (
	ErrNotFound   = errors.New("file not found")
	ErrEmptyPlan  = errors.New("chunk plan is empty")
	ErrNoFileName = errors.New("file name is required")
)
