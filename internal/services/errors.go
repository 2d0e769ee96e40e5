package services

import (
	"errors"

	"promostore/internal/repos"
)

var (
	ErrNotFound     = repos.ErrNotFound
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyCart    = errors.New("cart is empty")
)
