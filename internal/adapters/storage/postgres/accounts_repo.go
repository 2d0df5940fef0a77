package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"med-adherence-tracker/internal/domain/accounts"

	"github.com/jackc/pgx/v5/pgconn"
)

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

func (r *AccountsRepo) Create(ctx context.Context, a accounts.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		a.ID,
		a.Username,
		a.PasswordHash,
		a.Role,
		a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation (username)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return accounts.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *AccountsRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return accounts.Account{}, accounts.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		WHERE id = $1
	`, id)

	return scanAccount(row)
}

func (r *AccountsRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return accounts.Account{}, accounts.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM accounts
		WHERE username = $1
	`, username)

	return scanAccount(row)
}

func scanAccount(row *sql.Row) (accounts.Account, error) {
	var a accounts.Account
	if err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.Role,
		&a.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return accounts.Account{}, accounts.ErrNotFound
		}
		return accounts.Account{}, err
	}
	return a, nil
}
