package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"finderads/internal/domain/account"
	"finderads/internal/infrastructure/persistence/mappers"
	"finderads/internal/infrastructure/persistence/models"
	"finderads/internal/shared/db"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

// LedgerRepositoryImpl implements account.LedgerRepository on gorm. The
// journal is append-only: there is no update or delete path.
type LedgerRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewLedgerRepository(gdb *gorm.DB, logger logger.Interface) account.LedgerRepository {
	return &LedgerRepositoryImpl{db: gdb, logger: logger}
}

func (r *LedgerRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *LedgerRepositoryImpl) Append(ctx context.Context, e *account.LedgerEntry) error {
	model := mappers.LedgerEntryToModel(e)
	model.ID = 0

	if err := r.conn(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return account.ErrDuplicateReference
		}
		r.logger.Errorw("failed to append ledger entry",
			"account_id", e.AccountID(), "kind", e.Kind().String(), "error", err)
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	e.SetID(model.ID)
	return nil
}

// SumByAccount folds the journal into a signed balance. Debits count
// negative, everything else positive, matching LedgerEntry.Delta.
func (r *LedgerRepositoryImpl) SumByAccount(ctx context.Context, accountID uint) (int, error) {
	var sum *int
	err := r.conn(ctx).Model(&models.CreditEntryModel{}).
		Where("account_id = ?", accountID).
		Select("SUM(CASE WHEN kind = ? THEN -amount ELSE amount END)", account.EntryKindDebit.String()).
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *LedgerRepositoryImpl) ListByAccount(ctx context.Context, accountID uint, offset, limit int) ([]*account.LedgerEntry, int64, error) {
	query := r.conn(ctx).Model(&models.CreditEntryModel{}).Where("account_id = ?", accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	var rows []models.CreditEntryModel
	if err := query.
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	entries := make([]*account.LedgerEntry, 0, len(rows))
	for i := range rows {
		e, err := mappers.LedgerEntryToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, nil
}

func (r *LedgerRepositoryImpl) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&models.CreditEntryModel{}).
		Where("reference = ?", reference).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check ledger reference: %w", err)
	}
	return count > 0, nil
}
