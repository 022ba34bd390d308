package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"poputkaBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (int, error) {
	query := `INSERT INTO users (email, name, phone, password, role) VALUES (?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, query, user.Email, user.Name, user.Phone, user.Password, user.Role)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	query := `SELECT id, email, name, phone, role, rating, is_verified, avatar_path, created_at
                  FROM users WHERE id = ?`
	var avatar sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Phone, &user.Role,
		&user.Rating, &user.IsVerified, &avatar, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	if avatar.Valid {
		user.AvatarPath = &avatar.String
	}
	return user, nil
}

// GetUserByEmail returns the stored password hash as well, the caller is
// expected to strip it before the user leaves the service layer.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	query := `SELECT id, email, name, phone, password, role, rating, is_verified, avatar_path, created_at
                  FROM users WHERE email = ?`
	var avatar sql.NullString
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.Phone, &user.Password, &user.Role,
		&user.Rating, &user.IsVerified, &avatar, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, nil
	}
	if err != nil {
		return models.User{}, err
	}
	if avatar.Valid {
		user.AvatarPath = &avatar.String
	}
	return user, nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, userID int, avatarPath string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET avatar_path = ? WHERE id = ?`, avatarPath, userID)
	return err
}

func (r *UserRepository) UpdateFCMToken(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET fcm_token = ? WHERE id = ?`, token, userID)
	return err
}

func (r *UserRepository) GetFCMToken(ctx context.Context, userID int) (string, error) {
	var token sql.NullString
	err := r.DB.QueryRowContext(ctx, `SELECT fcm_token FROM users WHERE id = ?`, userID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", nil
	}
	return token.String, nil
}

func (r *UserRepository) CreateSession(ctx context.Context, session models.Session) error {
	query := `INSERT INTO sessions (user_id, role, refresh_token, expires_at)
                  VALUES (?, ?, ?, ?)
                  ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)`
	_, err := r.DB.ExecContext(ctx, query, session.UserID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var session models.Session
	query := `SELECT id, user_id, role, refresh_token, expires_at, created_at FROM sessions WHERE refresh_token = ?`
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.ID, &session.UserID, &session.Role, &session.RefreshToken, &session.ExpiresAt, &session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (r *UserRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, before)
	return err
}
