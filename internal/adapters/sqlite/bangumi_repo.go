package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
	"github.com/rs/xid"
)

type BangumiRepository struct {
	db *sql.DB
}

func NewBangumiRepository(db *sql.DB) *BangumiRepository {
	return &BangumiRepository{db: db}
}

const bangumiColumns = `id, name, keyword, cover, update_time, status, episode, subtitle_group, created_at, updated_at`

func (r *BangumiRepository) Upsert(ctx context.Context, b domain.Bangumi) (domain.Bangumi, error) {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return domain.Bangumi{}, errors.New("missing bangumi name")
	}
	if b.ID == "" {
		b.ID = xid.New().String()
	}
	if b.Status == "" {
		b.Status = domain.StatusNormal
	}
	now := nowText()

	// Le suivi (status/episode/subtitle_group) appartient à l'utilisateur:
	// un refresh du calendrier ne touche qu'aux métadonnées de la source.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bangumi(`+bangumiColumns+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			keyword = excluded.keyword,
			cover = excluded.cover,
			update_time = excluded.update_time,
			updated_at = excluded.updated_at
	`,
		b.ID, name, b.Keyword, b.Cover, b.UpdateTime,
		string(b.Status), b.Episode, b.SubtitleGroup,
		now, now,
	)
	if err != nil {
		return domain.Bangumi{}, err
	}
	return r.Get(ctx, name)
}

func (r *BangumiRepository) Get(ctx context.Context, name string) (domain.Bangumi, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bangumiColumns+` FROM bangumi WHERE name = ?`, name)
	b, err := scanBangumi(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Bangumi{}, ports.ErrNotFound
		}
		return domain.Bangumi{}, err
	}
	return b, nil
}

func (r *BangumiRepository) List(ctx context.Context, statuses ...domain.Status) ([]domain.Bangumi, error) {
	q := `SELECT ` + bangumiColumns + ` FROM bangumi`
	args := []any{}
	if len(statuses) > 0 {
		marks := make([]string, 0, len(statuses))
		for _, st := range statuses {
			marks = append(marks, "?")
			args = append(args, string(st))
		}
		q += ` WHERE status IN (` + strings.Join(marks, ", ") + `)`
	}
	q += ` ORDER BY rowid ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Bangumi{}
	for rows.Next() {
		b, err := scanBangumi(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BangumiRepository) UpdateProgress(ctx context.Context, name string, status domain.Status, episode int) (domain.Bangumi, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bangumi
		SET status = ?, episode = ?, updated_at = ?
		WHERE name = ?
	`, string(status), episode, nowText(), name)
	if err != nil {
		return domain.Bangumi{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.Bangumi{}, ports.ErrNotFound
	}
	return r.Get(ctx, name)
}

// SetSubtitleGroup records which groups release the show.
func (r *BangumiRepository) SetSubtitleGroup(ctx context.Context, name string, ids []string) (domain.Bangumi, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bangumi SET subtitle_group = ?, updated_at = ? WHERE name = ?
	`, domain.JoinSubtitleIDs(ids), nowText(), name)
	if err != nil {
		return domain.Bangumi{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.Bangumi{}, ports.ErrNotFound
	}
	return r.Get(ctx, name)
}

func (r *BangumiRepository) DeleteUnfollowed(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bangumi WHERE status NOT IN (?, ?)`,
		string(domain.StatusFollowed), string(domain.StatusUpdated))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBangumi(s rowScanner) (domain.Bangumi, error) {
	var b domain.Bangumi
	var status, created, updated string
	err := s.Scan(
		&b.ID, &b.Name, &b.Keyword, &b.Cover, &b.UpdateTime,
		&status, &b.Episode, &b.SubtitleGroup,
		&created, &updated,
	)
	if err != nil {
		return domain.Bangumi{}, err
	}
	b.Status = domain.Status(status)
	b.CreatedAt = parseTime(created)
	b.UpdatedAt = parseTime(updated)
	return b, nil
}
