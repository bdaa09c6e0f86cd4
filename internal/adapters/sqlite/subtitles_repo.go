package sqlite

import (
	"context"
	"database/sql"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
)

type SubtitlesRepository struct {
	db *sql.DB
}

func NewSubtitlesRepository(db *sql.DB) *SubtitlesRepository {
	return &SubtitlesRepository{db: db}
}

func (r *SubtitlesRepository) Ensure(ctx context.Context, g domain.SubtitleGroup) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subtitle_groups(id, name) VALUES(?, ?)
		ON CONFLICT(id) DO NOTHING
	`, g.ID, g.Name)
	return err
}

func (r *SubtitlesRepository) Names(ctx context.Context, ids []string) ([]domain.SubtitleGroup, error) {
	out := make([]domain.SubtitleGroup, 0, len(ids))
	for _, id := range ids {
		var name string
		err := r.db.QueryRowContext(ctx, `SELECT name FROM subtitle_groups WHERE id = ?`, id).Scan(&name)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, domain.SubtitleGroup{ID: id, Name: name})
	}
	return out, nil
}

func (r *SubtitlesRepository) List(ctx context.Context) ([]domain.SubtitleGroup, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM subtitle_groups ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.SubtitleGroup{}
	for rows.Next() {
		var g domain.SubtitleGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
