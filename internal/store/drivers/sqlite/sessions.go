package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/astecastudio/portfolio-api/internal/domain"
)

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, user_id, session_token, created_at, expires_at, is_active`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, user_id, session_token, created_at, expires_at, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Token, s.CreatedAt, s.ExpiresAt, s.IsActive)
	return mapConflict(err)
}

func (r *sessionsRepo) GetActiveSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM admin_sessions
		 WHERE session_token = ? AND is_active = 1`, token)
	return scanSession(row)
}

func (r *sessionsRepo) GetSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM admin_sessions WHERE session_token = ?`, token)
	return scanSession(row)
}

func (r *sessionsRepo) DeactivateSession(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE admin_sessions SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *sessionsRepo) DeactivateSessionByToken(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE admin_sessions SET is_active = 0
		 WHERE session_token = ? AND is_active = 1`, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sessionsRepo) DeactivateUserSessions(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admin_sessions SET is_active = 0
		 WHERE user_id = ? AND is_active = 1`, userID)
	return err
}

func (r *sessionsRepo) DeactivateExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE admin_sessions SET is_active = 0
		 WHERE is_active = 1 AND expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanSession(row *sql.Row) (domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.UserID, &s.Token, &s.CreatedAt, &s.ExpiresAt, &s.IsActive)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}
