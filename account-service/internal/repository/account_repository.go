package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/accounts/account-service/internal/repository/migrations"
	"github.com/eaglebank/accounts/shared/models"
)

const accountColumns = `id, tenant_id, owner_id, status, suspension_reason, created_at, updated_at`

// AccountRepository persists accounts in PostgreSQL, the source of truth.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Migrate applies the embedded PostgreSQL schema.
func (r *AccountRepository) Migrate(ctx context.Context) error {
	return runMigrations(ctx, r.db, migrationSet{fsys: migrations.Postgres, dir: "postgres", placeholder: "$1"})
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (string, error) {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id string
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.TenantID, account.OwnerID, string(account.Status),
		nullableString(account.SuspensionReason), account.CreatedAt, account.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// Update overwrites the mutable columns of id and returns the stored row.
func (r *AccountRepository) Update(ctx context.Context, id string, account *models.Account) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET status = $2, suspension_reason = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + accountColumns
	updated, err := scanAccount(r.db.QueryRowContext(ctx, query,
		id, string(account.Status), nullableString(account.SuspensionReason), account.UpdatedAt,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return updated, nil
}

func scanAccount(scan func(dest ...any) error) (*models.Account, error) {
	var (
		account models.Account
		status  string
		reason  sql.NullString
	)
	if err := scan(
		&account.ID, &account.TenantID, &account.OwnerID, &status, &reason,
		&account.CreatedAt, &account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	account.Status = models.AccountStatus(status)
	account.SuspensionReason = reason.String
	account.CreatedAt = account.CreatedAt.UTC()
	account.UpdatedAt = account.UpdatedAt.UTC()
	return &account, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
