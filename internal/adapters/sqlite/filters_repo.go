package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

type FiltersRepository struct {
	db *sql.DB
}

func NewFiltersRepository(db *sql.DB) *FiltersRepository {
	return &FiltersRepository{db: db}
}

func (r *FiltersRepository) Get(ctx context.Context, bangumiName string) (domain.Filter, error) {
	f := domain.Filter{BangumiName: bangumiName}
	err := r.db.QueryRowContext(ctx, `
		SELECT subtitle, include, exclude, regex FROM filters WHERE bangumi_name = ?
	`, bangumiName).Scan(&f.Subtitle, &f.Include, &f.Exclude, &f.Regex)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Filter{}, ports.ErrNotFound
		}
		return domain.Filter{}, err
	}
	return f, nil
}

func (r *FiltersRepository) Put(ctx context.Context, f domain.Filter) (domain.Filter, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO filters(bangumi_name, subtitle, include, exclude, regex, updated_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(bangumi_name) DO UPDATE SET
			subtitle = excluded.subtitle,
			include = excluded.include,
			exclude = excluded.exclude,
			regex = excluded.regex,
			updated_at = excluded.updated_at
	`, f.BangumiName, f.Subtitle, f.Include, f.Exclude, f.Regex, nowText())
	if err != nil {
		return domain.Filter{}, err
	}
	return r.Get(ctx, f.BangumiName)
}
