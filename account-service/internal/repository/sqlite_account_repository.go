package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/eaglebank/accounts/account-service/internal/repository/migrations"
	"github.com/eaglebank/accounts/shared/models"
)

// SQLiteAccountRepository persists accounts in a single SQLite file. Used for
// local runs and single-node deployments. Timestamps are stored as
// RFC3339Nano text.
type SQLiteAccountRepository struct {
	db *sql.DB
}

// OpenSQLiteAccountRepository opens (creating if needed) the database at
// path and applies the embedded schema.
func OpenSQLiteAccountRepository(ctx context.Context, path string) (*SQLiteAccountRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	repo := &SQLiteAccountRepository{db: db}
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteAccountRepository) Migrate(ctx context.Context) error {
	return runMigrations(ctx, r.db, migrationSet{fsys: migrations.SQLite, dir: "sqlite", placeholder: "?"})
}

func (r *SQLiteAccountRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteAccountRepository) Create(ctx context.Context, account *models.Account) (string, error) {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.TenantID, account.OwnerID, string(account.Status),
		nullableString(account.SuspensionReason), formatTime(account.CreatedAt), formatTime(account.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	return account.ID, nil
}

func (r *SQLiteAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	account, err := scanSQLiteAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (r *SQLiteAccountRepository) Update(ctx context.Context, id string, account *models.Account) (*models.Account, error) {
	query := `UPDATE accounts SET status = ?, suspension_reason = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		string(account.Status), nullableString(account.SuspensionReason), formatTime(account.UpdatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return nil, models.ErrAccountNotFound
	}
	return r.GetByID(ctx, id)
}

func scanSQLiteAccount(row *sql.Row) (*models.Account, error) {
	var (
		account              models.Account
		status               string
		reason               sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&account.ID, &account.TenantID, &account.OwnerID, &status, &reason, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if account.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if account.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	account.Status = models.AccountStatus(status)
	account.SuspensionReason = reason.String
	return &account, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
