package postgres

import (
	"context"
	"database/sql"

	"petcareapi/internal/model"
	"petcareapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, user_name, email, address, phone_number, status, profile_pic_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_name, email, address, phone_number, status, profile_pic_path
	`
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.UserName,
		u.Email,
		u.Address,
		u.PhoneNumber,
		u.Status,
		u.ProfilePicPath,
	)
	var out model.User
	if err := scanUser(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single user by id.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, user_name, email, address, phone_number, status, profile_pic_path
		FROM users
		WHERE id = $1
	`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update applies a partial update; nil fields keep their stored value.
func (r *UserPostgres) Update(ctx context.Context, id string, upd model.UserUpdate) error {
	const q = `
		UPDATE users SET
			user_name        = COALESCE($2::text, user_name),
			address          = COALESCE($3::text, address),
			phone_number     = COALESCE($4::text, phone_number),
			status           = COALESCE($5::text, status),
			profile_pic_path = COALESCE($6::text, profile_pic_path)
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, upd.UserName, upd.Address, upd.PhoneNumber, upd.Status, upd.ProfilePicPath)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.UserName,
		&u.Email,
		&u.Address,
		&u.PhoneNumber,
		&u.Status,
		&u.ProfilePicPath,
	)
}
