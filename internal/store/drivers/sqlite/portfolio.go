package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/astecastudio/portfolio-api/internal/domain"
	"github.com/astecastudio/portfolio-api/internal/store"
)

type portfolioRepo struct {
	db dbtx
}

const portfolioColumns = `id, title, description, category, item_type, file_path, url,
	thumbnail_path, tags, created_by, is_active, created_at, updated_at`

func (r *portfolioRepo) CreatePortfolioItem(ctx context.Context, it domain.PortfolioItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO portfolio_items (id, title, description, category, item_type, file_path,
		 url, thumbnail_path, tags, created_by, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Title, it.Description, it.Category, it.ItemType,
		mapStringNull(it.FilePath), mapStringNull(it.URL), mapStringNull(it.ThumbnailPath),
		encodeTags(it.Tags), mapStringNull(it.CreatedBy), it.IsActive,
		it.CreatedAt, it.UpdatedAt)
	return mapConflict(err)
}

func (r *portfolioRepo) GetPortfolioItemByID(ctx context.Context, id string) (domain.PortfolioItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = ?`, id)

	it, err := scanPortfolioItem(row.Scan)
	if err != nil {
		return domain.PortfolioItem{}, mapNotFound(err)
	}
	return it, nil
}

func (r *portfolioRepo) ListPortfolioItems(ctx context.Context, f store.PortfolioFilter) ([]domain.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_items WHERE 1=1`
	var args []any

	if !f.IncludeInactive {
		query += ` AND is_active = 1`
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.ItemType != "" {
		query += ` AND item_type = ?`
		args = append(args, f.ItemType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.PortfolioItem{}
	for rows.Next() {
		it, err := scanPortfolioItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *portfolioRepo) UpdatePortfolioItem(ctx context.Context, it domain.PortfolioItem) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE portfolio_items SET title = ?, description = ?, category = ?, item_type = ?,
		 file_path = ?, url = ?, thumbnail_path = ?, tags = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		it.Title, it.Description, it.Category, it.ItemType,
		mapStringNull(it.FilePath), mapStringNull(it.URL), mapStringNull(it.ThumbnailPath),
		encodeTags(it.Tags), it.IsActive, it.UpdatedAt, it.ID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *portfolioRepo) DeactivatePortfolioItem(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE portfolio_items SET is_active = 0, updated_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *portfolioRepo) CountActivePortfolioItems(ctx context.Context) (domain.PortfolioStats, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN item_type = 'image' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN item_type = 'video' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN item_type = 'link' THEN 1 ELSE 0 END), 0)
		 FROM portfolio_items WHERE is_active = 1`)

	var s domain.PortfolioStats
	if err := row.Scan(&s.TotalItems, &s.Images, &s.Videos, &s.Links); err != nil {
		return domain.PortfolioStats{}, err
	}
	return s, nil
}

func scanPortfolioItem(scan func(dest ...any) error) (domain.PortfolioItem, error) {
	var it domain.PortfolioItem
	var filePath, url, thumbnail, createdBy sql.NullString
	var tags string

	err := scan(
		&it.ID, &it.Title, &it.Description, &it.Category, &it.ItemType,
		&filePath, &url, &thumbnail, &tags, &createdBy,
		&it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return domain.PortfolioItem{}, err
	}

	it.FilePath = mapNullString(filePath)
	it.URL = mapNullString(url)
	it.ThumbnailPath = mapNullString(thumbnail)
	it.CreatedBy = mapNullString(createdBy)
	it.Tags = decodeTags(tags)
	return it, nil
}
