package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, user_id, account_type, currency_code, status, created_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool DBPool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.AccountID, m.UserID, m.AccountType, m.CurrencyCode, m.Status, m.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return findAccount(ctx, r.Pool, accountID, false)
}

// findAccount reads one account row, optionally taking its row lock.
func findAccount(ctx context.Context, q querier, accountID string, forUpdate bool) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var m models.Account
	err := q.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.UserID,
		&m.AccountType,
		&m.CurrencyCode,
		&m.Status,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		if pgErrorCode(err) == pgLockNotAvailable {
			return nil, fmt.Errorf("%w: row lock on account %s: %v", apperrors.ErrUnavailable, accountID, err)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}
