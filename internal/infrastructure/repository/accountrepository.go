package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"finderads/internal/domain/account"
	"finderads/internal/infrastructure/persistence/mappers"
	"finderads/internal/infrastructure/persistence/models"
	"finderads/internal/shared/db"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

// AccountRepositoryImpl implements account.Repository on gorm.
type AccountRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAccountRepository(gdb *gorm.DB, logger logger.Interface) account.Repository {
	return &AccountRepositoryImpl{db: gdb, logger: logger}
}

// conn joins an open transaction carried by ctx, if any.
func (r *AccountRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, a *account.ProAccount) error {
	model := mappers.AccountToModel(a)
	model.ID = 0

	if err := r.conn(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("account already exists for this email")
		}
		r.logger.Errorw("failed to create account", "email", a.UserEmail(), "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	a.SetID(model.ID)
	r.logger.Infow("account created", "account_id", model.ID, "sid", model.SID)
	return nil
}

func (r *AccountRepositoryImpl) Update(ctx context.Context, a *account.ProAccount) error {
	model := mappers.AccountToModel(a)

	result := r.conn(ctx).Model(&models.ProAccountModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"plan_type":              model.PlanType,
			"status":                 model.Status,
			"stripe_customer_id":     model.StripeCustomerID,
			"stripe_subscription_id": model.StripeSubscriptionID,
			"api_key_hash":           model.APIKeyHash,
			"version":                model.Version,
			"updated_at":             model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update account", "account_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) GetByID(ctx context.Context, accountID uint) (*account.ProAccount, error) {
	var model models.ProAccountModel
	if err := r.conn(ctx).First(&model, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return mappers.AccountToDomain(&model)
}

func (r *AccountRepositoryImpl) GetBySID(ctx context.Context, sid string) (*account.ProAccount, error) {
	var model models.ProAccountModel
	if err := r.conn(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by SID: %w", err)
	}
	return mappers.AccountToDomain(&model)
}

func (r *AccountRepositoryImpl) GetByEmail(ctx context.Context, email string) (*account.ProAccount, error) {
	var model models.ProAccountModel
	if err := r.conn(ctx).Where("user_email = ?", strings.ToLower(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return mappers.AccountToDomain(&model)
}

func (r *AccountRepositoryImpl) GetByStripeCustomerID(ctx context.Context, customerID string) (*account.ProAccount, error) {
	var model models.ProAccountModel
	if err := r.conn(ctx).Where("stripe_customer_id = ?", customerID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by stripe customer: %w", err)
	}
	return mappers.AccountToDomain(&model)
}

// DebitCredits performs the conditional decrement that makes overdraw
// impossible under concurrency: the WHERE clause re-checks the balance inside
// the same statement that decrements it.
func (r *AccountRepositoryImpl) DebitCredits(ctx context.Context, accountID uint, amount int) error {
	if amount <= 0 {
		return account.ErrInvalidAmount
	}

	result := r.conn(ctx).Model(&models.ProAccountModel{}).
		Where("id = ? AND credits >= ?", accountID, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if result.Error != nil {
		r.logger.Errorw("failed to debit credits",
			"account_id", accountID, "amount", amount, "error", result.Error)
		return fmt.Errorf("failed to debit credits: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the account is missing or the balance is short; resolve
		// which so callers can answer precisely.
		var exists int64
		if err := r.conn(ctx).Model(&models.ProAccountModel{}).
			Where("id = ?", accountID).Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to debit credits: %w", err)
		}
		if exists == 0 {
			return account.ErrAccountNotFound
		}
		return account.ErrInsufficientCredits
	}

	r.logger.Infow("credits debited", "account_id", accountID, "amount", amount)
	return nil
}

func (r *AccountRepositoryImpl) CreditCredits(ctx context.Context, accountID uint, amount int) error {
	if amount <= 0 {
		return account.ErrInvalidAmount
	}

	result := r.conn(ctx).Model(&models.ProAccountModel{}).
		Where("id = ?", accountID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount))
	if result.Error != nil {
		r.logger.Errorw("failed to credit account",
			"account_id", accountID, "amount", amount, "error", result.Error)
		return fmt.Errorf("failed to credit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}

	r.logger.Infow("credits added", "account_id", accountID, "amount", amount)
	return nil
}

func (r *AccountRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*account.ProAccount, int64, error) {
	var total int64
	if err := r.conn(ctx).Model(&models.ProAccountModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	var rows []models.ProAccountModel
	if err := r.conn(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]*account.ProAccount, 0, len(rows))
	for i := range rows {
		a, err := mappers.AccountToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, nil
}
