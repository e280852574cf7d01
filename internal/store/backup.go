package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// BackupVersion is the current backup document format.
const BackupVersion = 1

// Backup is a portable dump of the worksheet library and settings.
type Backup struct {
	Version    int                          `json:"version"`
	ExportedAt time.Time                    `json:"exportedAt"`
	Worksheets []worksheet.Worksheet        `json:"worksheets"`
	Settings   map[string]map[string]string `json:"settings,omitempty"`
}

// ExportAll dumps every worksheet and the config and profile settings.
func (s *Store) ExportAll(ctx context.Context) (*Backup, error) {
	list, err := s.WorksheetRepo().List(ctx)
	if err != nil {
		return nil, err
	}

	settings := make(map[string]map[string]string)
	for _, ns := range []string{NamespaceConfig, NamespaceProfile} {
		values, err := s.KV().List(ctx, ns)
		if err != nil {
			return nil, err
		}
		if len(values) > 0 {
			settings[ns] = values
		}
	}

	return &Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Worksheets: list,
		Settings:   settings,
	}, nil
}

// ImportAll restores a backup inside one transaction. Worksheets with an
// existing id are replaced. It returns the number of worksheets written.
func (s *Store) ImportAll(ctx context.Context, b *Backup) (int, error) {
	if b.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %d", b.Version)
	}
	for i := range b.Worksheets {
		if err := b.Worksheets[i].Validate(); err != nil {
			return 0, fmt.Errorf("worksheet %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	sheets := &worksheetRepo{db: tx}
	kv := &kvStore{db: tx}
	for i := range b.Worksheets {
		ws := b.Worksheets[i]
		if ws.CreatedAt.IsZero() {
			ws.CreatedAt = time.Now().UTC()
		}
		if ws.UpdatedAt.IsZero() {
			ws.UpdatedAt = ws.CreatedAt
		}
		if err := sheets.put(ctx, &ws); err != nil {
			return 0, err
		}
	}
	for ns, values := range b.Settings {
		for k, v := range values {
			if err := kv.Set(ctx, ns, k, v); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(b.Worksheets), nil
}
