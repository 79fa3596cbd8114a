package sqlite

import (
	"context"
	"database/sql"

	"github.com/astecastudio/portfolio-api/internal/domain"
)

type contactsRepo struct {
	db dbtx
}

func (r *contactsRepo) CreateContactMessage(ctx context.Context, m domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, subject, message, project_type, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, mapStringNull(m.Phone), m.Subject, m.Message,
		mapStringNull(m.ProjectType), m.IsRead, m.CreatedAt)
	return mapConflict(err)
}

func (r *contactsRepo) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone, subject, message, project_type, is_read, created_at
		 FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		var phone, projectType sql.NullString
		err := rows.Scan(&m.ID, &m.Name, &m.Email, &phone, &m.Subject,
			&m.Message, &projectType, &m.IsRead, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		m.Phone = mapNullString(phone)
		m.ProjectType = mapNullString(projectType)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *contactsRepo) MarkContactMessageRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_messages SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *contactsRepo) CountContactMessages(ctx context.Context) (domain.ContactStats, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN is_read = 0 THEN 1 ELSE 0 END), 0)
		 FROM contact_messages`)

	var s domain.ContactStats
	if err := row.Scan(&s.TotalMessages, &s.UnreadMessages); err != nil {
		return domain.ContactStats{}, err
	}
	return s, nil
}
