package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

const mysqlErrDupEntry = 1062

type SQLRepo struct {
	DB *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{DB: db}
}

func (r *SQLRepo) Create(ctx context.Context, user *User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email_address, password_hash) VALUES (?, ?, ?)",
		user.ID, user.EmailAddress, user.PasswordHash,
	)
	if isDuplicateEmail(err) {
		return ErrUserExists
	}
	return err
}

// isDuplicateEmail reports whether err is the unique violation on
// users.email_address, hit when two registrations race past the lookup.
func isDuplicateEmail(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique &&
			strings.Contains(sqliteErr.Error(), "email_address")
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDupEntry && strings.Contains(mysqlErr.Message, "email_address")
	}
	return false
}

func (r *SQLRepo) FindByEmailAddress(ctx context.Context, emailAddress string) (*User, error) {
	return r.findOne(ctx,
		"SELECT id, email_address, password_hash FROM users WHERE email_address = ?",
		emailAddress,
	)
}

func (r *SQLRepo) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx,
		"SELECT id, email_address, password_hash FROM users WHERE id = ?",
		id,
	)
}

func (r *SQLRepo) findOne(ctx context.Context, query string, arg string) (*User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.EmailAddress, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
