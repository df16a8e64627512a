package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// CatalogStore defines the read-only interface to the vocabulary catalog.
// The scheduling core never writes catalog content; authoring is owned by a
// separate system.
type CatalogStore interface {
	// GetByLevel retrieves every vocabulary item at the given CEFR level.
	GetByLevel(ctx context.Context, level domain.Level) ([]*domain.VocabularyItem, error)

	// GetByIDs retrieves the items whose IDs appear in ids. IDs that no
	// longer exist in the catalog are silently omitted from the result; the
	// composer uses this to drop mastery records that reference removed items.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.VocabularyItem, error)
}
