package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/utils"
)

// User mirrors the 'users' table. PasswordHash never leaves the repository
// layer in any response payload.
type User struct {
	ID           uint64
	FirstName    string
	LastName     string
	Username     string
	PasswordHash string
	PhoneNumber  string
	Role         model.Role
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts a user with the given role. Roles
// are immutable after creation: no update path exists. Duplicate usernames
// surface as ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, firstName, lastName, username, password, phone string, role model.Role, cost int) (User, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, username, password, phone_number, role) VALUES (?,?,?,?,?,?)",
		firstName, lastName, username, hash, phone, role.String())
	if err != nil {
		// 1062 = MySQL duplicate entry, here only possible on users.username
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return User{}, ErrUsernameExists
		}
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return User{
		ID:          uint64(id),
		FirstName:   firstName,
		LastName:    lastName,
		Username:    username,
		PhoneNumber: phone,
		Role:        role,
	}, nil
}

// GetByUsername fetches a user by exact username. sql.ErrNoRows passes
// through so the login handler can answer with invalid-credentials.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	var u User
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, username, password, phone_number, role FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash, &u.PhoneNumber, &role)
	if err != nil {
		return User{}, err
	}
	u.Role, _ = model.ParseRole(role)
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, username, password, phone_number, role FROM users WHERE id=? LIMIT 1",
		id).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash, &u.PhoneNumber, &role)
	if err != nil {
		return User{}, err
	}
	u.Role, _ = model.ParseRole(role)
	return u, nil
}

// OwnerSummary is the admin view over hall owners: identity plus how many
// halls each owner manages and their aggregated names.
type OwnerSummary struct {
	ID          uint64 `json:"id"`
	FirstName   string `json:"first_name"`
	PhoneNumber string `json:"phone_number"`
	HallCount   int    `json:"hall_count"`
	HallsInfo   string `json:"halls_info"`
}

// ListOwners returns every hall_owner account with a per-owner hall count and
// a comma-joined list of hall names ("No halls" when none).
func (r *UserRepo) ListOwners(ctx context.Context) ([]OwnerSummary, error) {
	const q = `SELECT u.id, u.first_name, u.phone_number,
	                  COUNT(h.id),
	                  IFNULL(GROUP_CONCAT(h.name SEPARATOR ', '), 'No halls')
	           FROM users u
	           LEFT JOIN wedding_halls h ON h.owner_id = u.id
	           WHERE u.role = 'hall_owner'
	           GROUP BY u.id, u.first_name, u.phone_number
	           ORDER BY u.id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OwnerSummary, 0)
	for rows.Next() {
		var o OwnerSummary
		if err := rows.Scan(&o.ID, &o.FirstName, &o.PhoneNumber, &o.HallCount, &o.HallsInfo); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
