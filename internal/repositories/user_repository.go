package repositories

import (
	"context"
	"database/sql"
	"time"

	"taskhub/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// refresh helpers
	UpdateRefresh(ctx context.Context, userID, token string, expiresAt time.Time) error
	ClearRefresh(ctx context.Context, userID string) error
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, created_at,
	refresh_token, refresh_expires_at, refresh_revoked,
	COALESCE(telegram_chat_id,0), COALESCE(notify_telegram,FALSE)`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
		&u.RefreshToken, &u.RefreshExpiresAt, &u.RefreshRevoked,
		&u.TelegramChatID, &u.NotifyTelegram,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (id, name, email, password_hash, role, telegram_chat_id, notify_telegram)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`
	return r.db.QueryRowContext(ctx, q,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.TelegramChatID, user.NotifyTelegram,
	).Scan(&user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	const q = `
		UPDATE users SET name=$1, email=$2, telegram_chat_id=$3, notify_telegram=$4
		WHERE id=$5`
	_, err := r.db.ExecContext(ctx, q,
		user.Name, user.Email, user.TelegramChatID, user.NotifyTelegram, user.ID)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	return err
}

func (r *userRepository) UpdateRefresh(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3`, token, expiresAt, userID)
	return err
}

func (r *userRepository) ClearRefresh(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET refresh_token=NULL, refresh_expires_at=NULL, refresh_revoked=FALSE
		WHERE id=$1`, userID)
	return err
}

func (r *userRepository) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
}
