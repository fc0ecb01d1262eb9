package storage

import "errors"

// ErrStateNotFound is returned when no snapshot exists for the shop.
var ErrStateNotFound = errors.New("shop state not found")

// ErrVersionConflict is returned when a conditional save loses against a
// concurrent writer.
var ErrVersionConflict = errors.New("shop state version conflict")
