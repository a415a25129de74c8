package repository

import "github.com/alexanderramin/daybook/internal/domain"

// ErrNotFound is returned when a lookup or delete matches no row.
var ErrNotFound = domain.ErrNotFound
