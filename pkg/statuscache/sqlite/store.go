package sqlite

import (
	"codeberg.org/miketth/niriwindows/pkg/niriwindows"
	"codeberg.org/miketth/niriwindows/pkg/statuscache/sqlite/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"time"
)

type StatusCache struct {
	db      *sql.DB
	querier *Queries
	now     func() time.Time
}

func NewStatusCache(filename string, log *zap.SugaredLogger) (*StatusCache, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	version, err := migrations.Migrate(db, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Debugw("opened status cache", "path", filename, "schema", version)

	return &StatusCache{
		db:      db,
		querier: New(db),
		now:     time.Now,
	}, nil
}

func (s *StatusCache) Close() error {
	return s.db.Close()
}

func (s *StatusCache) LastStatus() (niriwindows.Status, bool, error) {
	row, err := s.querier.GetStatus(context.Background())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return niriwindows.Status{}, false, nil
	case err != nil:
		return niriwindows.Status{}, false, fmt.Errorf("sqlite select: %w", err)
	}

	return niriwindows.Status{Text: row.Text, Tooltip: row.Tooltip}, true, nil
}

func (s *StatusCache) SaveStatus(status niriwindows.Status) error {
	if err := s.querier.SetStatus(context.Background(), SetStatusParams{
		Text:      status.Text,
		Tooltip:   status.Tooltip,
		UpdatedAt: s.now().Unix(),
	}); err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}
