package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrGiftIDNotUnique       = errors.New("a gift with this ID already exists")
	ErrGiftAmountNotPositive = errors.New("gift amounts must be larger than zero")
)
