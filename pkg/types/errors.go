package types

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrInvalidBloodType  = errors.New("invalid blood type")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidRadius     = errors.New("invalid radius")

	ErrDonorNotFound        = errors.New("donor not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationHandled  = errors.New("notification already handled")
)

// ValidationError carries per-field messages keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
