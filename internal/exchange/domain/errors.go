package domain

import "errors"

var (
	ErrIndexOutOfRange = errors.New("exchange index out of range")
	ErrEmptyParams     = errors.New("action has no params")
)
