package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// PreferenceRepository stores preference documents keyed by store name
type PreferenceRepository struct {
	db *DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetPreference returns nil when no document is stored under storeName
func (r *PreferenceRepository) GetPreference(storeName string) (*Preference, error) {
	var p Preference
	err := r.db.QueryRow(`
		SELECT store_name, document, created_at, updated_at
		FROM preferences
		WHERE store_name = ?
	`, storeName).Scan(&p.StoreName, &p.Document, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference %s: %w", storeName, err)
	}

	return &p, nil
}

func (r *PreferenceRepository) GetDocument(storeName string) ([]byte, error) {
	p, err := r.GetPreference(storeName)
	if err != nil || p == nil {
		return nil, err
	}
	return []byte(p.Document), nil
}

func (r *PreferenceRepository) SaveDocument(storeName string, data []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO preferences (store_name, document)
		VALUES (?, ?)
		ON CONFLICT (store_name) DO UPDATE
		SET document = excluded.document, updated_at = CURRENT_TIMESTAMP
	`, storeName, string(data))
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", storeName, err)
	}
	return nil
}
