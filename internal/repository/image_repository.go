package repository

import (
	"context"
	"database/sql"
	"strings"
)

// HallImage mirrors the 'hall_images' table. Exactly one image per hall
// should carry is_main = true; the flag is set by upload order (first image
// wins) as an application convention, not a database constraint.
type HallImage struct {
	ID        uint64 `json:"id"`
	ImagePath string `json:"image_path"`
	IsMain    bool   `json:"is_main"`
	HallID    uint64 `json:"hall_id"`
}

type ImageRepo struct{ db *sql.DB }

func NewImageRepo(db *sql.DB) *ImageRepo { return &ImageRepo{db: db} }

// CreateBulk inserts one row per stored path in a single statement, flagging
// the first path as the hall's main image. An empty slice is a no-op.
func (r *ImageRepo) CreateBulk(ctx context.Context, hallID uint64, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(paths))
	args := make([]any, 0, len(paths)*3)
	for i, p := range paths {
		placeholders = append(placeholders, "(?,?,?)")
		args = append(args, p, i == 0, hallID)
	}
	q := "INSERT INTO hall_images (image_path, is_main, hall_id) VALUES " +
		strings.Join(placeholders, ",")
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// ListByHall returns a hall's images with the main image first.
func (r *ImageRepo) ListByHall(ctx context.Context, hallID uint64) ([]HallImage, error) {
	const q = `SELECT id, image_path, is_main, hall_id FROM hall_images
	           WHERE hall_id = ? ORDER BY is_main DESC, id`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HallImage, 0)
	for rows.Next() {
		var im HallImage
		if err := rows.Scan(&im.ID, &im.ImagePath, &im.IsMain, &im.HallID); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, rows.Err()
}
