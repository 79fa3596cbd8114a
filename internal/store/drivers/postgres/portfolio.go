package postgres

import (
	"context"
	"database/sql"
	"fmt"
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
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		it.ID, it.Title, it.Description, it.Category, it.ItemType,
		mapStringNull(it.FilePath), mapStringNull(it.URL), mapStringNull(it.ThumbnailPath),
		encodeTags(it.Tags), mapStringNull(it.CreatedBy), it.IsActive,
		it.CreatedAt, it.UpdatedAt)
	return mapConflict(err)
}

func (r *portfolioRepo) GetPortfolioItemByID(ctx context.Context, id string) (domain.PortfolioItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = $1`, id)

	it, err := scanPortfolioItem(row.Scan)
	if err != nil {
		return domain.PortfolioItem{}, mapNotFound(err)
	}
	return it, nil
}

func (r *portfolioRepo) ListPortfolioItems(ctx context.Context, f store.PortfolioFilter) ([]domain.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_items WHERE TRUE`
	var args []any

	if !f.IncludeInactive {
		query += ` AND is_active`
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if f.ItemType != "" {
		args = append(args, f.ItemType)
		query += fmt.Sprintf(` AND item_type = $%d`, len(args))
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
		`UPDATE portfolio_items SET title = $1, description = $2, category = $3, item_type = $4,
		 file_path = $5, url = $6, thumbnail_path = $7, tags = $8, is_active = $9, updated_at = $10
		 WHERE id = $11`,
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
		`UPDATE portfolio_items SET is_active = FALSE, updated_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *portfolioRepo) CountActivePortfolioItems(ctx context.Context) (domain.PortfolioStats, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE item_type = 'image'),
		        COUNT(*) FILTER (WHERE item_type = 'video'),
		        COUNT(*) FILTER (WHERE item_type = 'link')
		 FROM portfolio_items WHERE is_active`)

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
