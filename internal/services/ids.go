package services

import (
	"github.com/google/uuid"

	"github.com/gestobra/gestobra-api/internal/types"
)

// RequireID validates an id path parameter before any database work. Malformed
// ids are rejected up front so they never read as "not found".
func RequireID(id, label string) error {
	if _, err := uuid.Parse(id); err != nil {
		return types.InvalidID("invalid " + label + " id")
	}
	return nil
}
