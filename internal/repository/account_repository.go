package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sq-invest/crm-service/internal/domain"
)

// ErrDuplicateAccount is returned when an id or username is already taken.
var ErrDuplicateAccount = errors.New("account already exists")

// AccountRepository handles persistence for the known actors and their secrets.
// Lookups that match nothing return pgx.ErrNoRows.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository instantiates the Postgres repository.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, username, name, email, role, department, access_level, permissions, status,
        can_delete, requires_2fa, secret_hash, last_login, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, username, name, email, role, department, access_level, permissions, status,
            can_delete, requires_2fa, secret_hash, last_login)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		account.ID,
		account.Username,
		account.Name,
		account.Email,
		account.Role,
		account.Department,
		string(account.AccessLevel),
		account.Permissions.Tokens(),
		string(account.Status),
		account.CanDelete,
		account.RequiresTwoFA,
		account.SecretHash,
		account.LastLogin,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	return translateWriteError(err)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts
        SET username=$1, name=$2, email=$3, role=$4, department=$5, access_level=$6, permissions=$7,
            status=$8, can_delete=$9, requires_2fa=$10, secret_hash=$11, last_login=$12, updated_at=NOW()
        WHERE id=$13`

	cmd, err := r.pool.Exec(ctx, query,
		account.Username,
		account.Name,
		account.Email,
		account.Role,
		account.Department,
		string(account.AccessLevel),
		account.Permissions.Tokens(),
		string(account.Status),
		account.CanDelete,
		account.RequiresTwoFA,
		account.SecretHash,
		account.LastLogin,
		account.ID,
	)
	if err != nil {
		return translateWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username=$1`
	return scanAccount(r.pool.QueryRow(ctx, query, username))
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, username`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *account)
	}
	return result, rows.Err()
}

func (r *accountRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE accounts SET last_login=$1 WHERE id=$2`, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account     domain.Account
		accessLevel string
		permissions []string
		status      string
	)
	if err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Name,
		&account.Email,
		&account.Role,
		&account.Department,
		&accessLevel,
		&permissions,
		&status,
		&account.CanDelete,
		&account.RequiresTwoFA,
		&account.SecretHash,
		&account.LastLogin,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if account.AccessLevel, err = domain.ParseAccessTier(accessLevel); err != nil {
		return nil, fmt.Errorf("account %s: %w", account.ID, err)
	}
	if account.Permissions, err = domain.ParsePermissionSet(permissions); err != nil {
		return nil, fmt.Errorf("account %s: %w", account.ID, err)
	}
	if account.Status, err = domain.ParseActorStatus(status); err != nil {
		return nil, fmt.Errorf("account %s: %w", account.ID, err)
	}
	return &account, nil
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, pgErr.ConstraintName)
	}
	return err
}
