package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// PostgresCatalogStore implements the store.CatalogStore interface
// using a PostgreSQL database as the storage backend. The catalog is
// read-only from the scheduling core's point of view.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a new PostgreSQL implementation of the
// CatalogStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// Ensure PostgresCatalogStore implements store.CatalogStore interface
var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

const vocabularyColumns = `id, word, word_type, phonetic, definition, translation,
	examples, level, created_at, updated_at`

// GetByLevel implements store.CatalogStore.GetByLevel
func (s *PostgresCatalogStore) GetByLevel(
	ctx context.Context,
	level domain.Level,
) ([]*domain.VocabularyItem, error) {
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLevel, level)
	}

	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary_items
		WHERE level = $1
		ORDER BY word
	`

	rows, err := s.db.QueryContext(ctx, query, level)
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to query vocabulary items: %w", err))
	}
	defer func() { _ = rows.Close() }()

	return collectVocabularyItems(rows)
}

// GetByIDs implements store.CatalogStore.GetByIDs
// IDs not present in the catalog are omitted from the result.
func (s *PostgresCatalogStore) GetByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]*domain.VocabularyItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// database/sql has no portable array binding, so build the placeholder
	// list for the IN clause explicitly.
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary_items
		WHERE id IN (` + strings.Join(placeholders, ", ") + `)
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to query vocabulary items by ID: %w", err))
	}
	defer func() { _ = rows.Close() }()

	return collectVocabularyItems(rows)
}

// scanVocabularyItem maps one result row onto a domain.VocabularyItem.
func scanVocabularyItem(row rowScanner) (*domain.VocabularyItem, error) {
	var item domain.VocabularyItem
	var phonetic, translation sql.NullString
	var examples []byte

	err := row.Scan(
		&item.ID,
		&item.Word,
		&item.Type,
		&phonetic,
		&item.Definition,
		&translation,
		&examples,
		&item.Level,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Phonetic = phonetic.String
	item.Translation = translation.String

	if len(examples) > 0 {
		if err := json.Unmarshal(examples, &item.Examples); err != nil {
			return nil, fmt.Errorf("failed to decode examples for item %s: %w", item.ID, err)
		}
	}

	return &item, nil
}

func collectVocabularyItems(rows *sql.Rows) ([]*domain.VocabularyItem, error) {
	var items []*domain.VocabularyItem
	for rows.Next() {
		item, err := scanVocabularyItem(rows)
		if err != nil {
			return nil, MapError(fmt.Errorf("failed to scan vocabulary item: %w", err))
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(fmt.Errorf("failed to iterate vocabulary items: %w", err))
	}

	return items, nil
}
