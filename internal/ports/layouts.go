package ports

import "github.com/randomtoy/spreads-go/internal/domain"

// LayoutRegistry resolves spread layout schemas. Implementations fall back to
// a default single-card schema for unknown ids instead of failing.
type LayoutRegistry interface {
	SchemaByID(id string) domain.SpreadSchema
	Schemas() []domain.SpreadSchema
}
