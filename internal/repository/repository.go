package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// ErrDuplicate is returned by Create operations when the key already
// exists. Postgres implementations translate unique violations to it so
// callers never depend on driver error types.
var ErrDuplicate = errors.New("duplicate key")
