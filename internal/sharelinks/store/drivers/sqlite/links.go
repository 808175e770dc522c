package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/sharelinks/internal/sharelinks/domain"
	"github.com/aussiebroadwan/sharelinks/pkg/idx"
)

type linksRepo struct {
	db *sql.DB
}

// Append inserts a resolved link record. Only the raw artwork bytes are
// persisted; the decoded image is a render-time convenience and is left
// nil when records are read back.
func (r *linksRepo) Append(ctx context.Context, rec domain.LinkRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO links (id, link_type, title, subtitle, target_url, artwork, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(),
		string(rec.Type),
		rec.Title,
		rec.Subtitle,
		rec.TargetURL,
		rec.Artwork,
		rec.CreatedAt.UTC().UnixNano(),
	)
	return err
}

// Recent returns up to limit records, newest first. ULIDs sort by creation
// time, so ordering by id descending gives reverse-chronological history.
func (r *linksRepo) Recent(ctx context.Context, limit int) ([]domain.LinkRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, link_type, title, subtitle, target_url, artwork, created_at
		FROM links
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.LinkRecord
	for rows.Next() {
		var (
			id        string
			linkType  string
			rec       domain.LinkRecord
			createdAt int64
		)
		if err := rows.Scan(&id, &linkType, &rec.Title, &rec.Subtitle, &rec.TargetURL, &rec.Artwork, &createdAt); err != nil {
			return nil, err
		}

		parsed, err := idx.Parse(id)
		if err != nil {
			return nil, err
		}
		rec.ID = parsed
		rec.Type = domain.LinkType(linkType)
		rec.CreatedAt = time.Unix(0, createdAt).UTC()

		records = append(records, rec)
	}

	return records, rows.Err()
}

// Prune deletes everything but the newest keep records.
func (r *linksRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM links
		WHERE id NOT IN (
			SELECT id FROM links ORDER BY id DESC LIMIT ?
		)`, keep)
	return err
}
