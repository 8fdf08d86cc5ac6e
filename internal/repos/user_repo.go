package repos

import (
	"time"

	"tienda/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Admin returns the single admin account.
func (r *UserRepo) Admin() (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM users WHERE role='ADMIN' LIMIT 1`)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdatePassword(userID, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=? WHERE id=?`, hash, userID)
	return err
}

// CreateSession records a new admin session id with its expiry. The row
// carries no identity; a live row simply means "is admin".
func (r *UserRepo) CreateSession(sid string, ttl time.Duration) error {
	expires := time.Now().UTC().Add(ttl).Format(time.RFC3339)
	_, err := r.DB.Exec(`INSERT INTO sessions(id,expires_at) VALUES(?,?)
                         ON CONFLICT(id) DO UPDATE SET expires_at=excluded.expires_at`, sid, expires)
	return err
}

func (r *UserRepo) SessionValid(sid string) (bool, error) {
	var n int
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM sessions WHERE id=? AND expires_at > ?`, sid, now)
	return n > 0, err
}

func (r *UserRepo) DeleteSession(sid string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id=?`, sid)
	return err
}

// PruneSessions drops expired rows; called opportunistically on login.
func (r *UserRepo) PruneSessions() error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, now)
	return err
}
