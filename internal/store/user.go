package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kekirawacc/kccweb/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password. Callers must not distinguish the two; a single sentinel keeps
// account enumeration off the table.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.ClubID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, full_name, email, password_hash, role, club_id, created_at, updated_at`

// Create inserts a user with a bcrypt-hashed password. Accounts are
// provisioned out-of-band; there is no self-registration flow.
func (s *UserStore) Create(fullName, email, password string, role model.Role, clubID *int64) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	result, err := s.db.Exec(
		`INSERT INTO users (full_name, email, password_hash, role, club_id) VALUES (?, ?, ?, ?, ?)`,
		fullName, email, string(hash), role, clubID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail matches the stored email exactly, no normalization.
func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// VerifyCredentials checks an email/password pair and returns the matching
// user's id. Unknown email and wrong password both come back as
// ErrInvalidCredentials; storage failures propagate wrapped.
func (s *UserStore) VerifyCredentials(email, password string) (int64, error) {
	u, err := s.GetByEmail(email)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}
