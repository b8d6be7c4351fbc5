package persistence

import (
	"context"

	"github.com/google/uuid"
)

// PermissiveConstraintChecker satisfies allocation.ConstraintChecker
// when no external constraint engine is configured. Ownership terms
// (channel and geography restrictions) live in a separate system; until
// one is wired in, every destination is permitted.
type PermissiveConstraintChecker struct{}

// NewPermissiveConstraintChecker creates a PermissiveConstraintChecker.
func NewPermissiveConstraintChecker() *PermissiveConstraintChecker {
	return &PermissiveConstraintChecker{}
}

// Permits always allows the destination.
func (c *PermissiveConstraintChecker) Permits(_ context.Context, _ uuid.UUID, _, _ string) (bool, string, error) {
	return true, "", nil
}
