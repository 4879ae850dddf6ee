package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"finderads/internal/domain/banner"
	"finderads/internal/infrastructure/persistence/mappers"
	"finderads/internal/infrastructure/persistence/models"
	"finderads/internal/shared/db"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

// ReservationRepositoryImpl implements banner.Repository on gorm. Slot
// claims go through the reservation_dates table whose composite unique index
// turns a racing double-booking into a duplicate-key error.
type ReservationRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewReservationRepository(gdb *gorm.DB, logger logger.Interface) banner.Repository {
	return &ReservationRepositoryImpl{db: gdb, logger: logger}
}

func (r *ReservationRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ReservationRepositoryImpl) Create(ctx context.Context, reservation *banner.Reservation) error {
	model := mappers.ReservationToModel(reservation)
	model.ID = 0

	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create reservation",
			"account_id", reservation.AccountID(), "position", reservation.Position().String(), "error", err)
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	reservation.SetID(model.ID)
	r.logger.Infow("reservation created",
		"reservation_id", model.ID, "sid", model.SID, "position", model.Position)
	return nil
}

// Update persists the aggregate with an optimistic lock: the write only
// lands when the stored version is still behind the in-memory one, so two
// interleaved load-mutate-save cycles cannot silently overwrite each other's
// schedule or credits_used.
func (r *ReservationRepositoryImpl) Update(ctx context.Context, reservation *banner.Reservation) error {
	model := mappers.ReservationToModel(reservation)

	result := r.conn(ctx).Model(&models.BannerReservationModel{}).
		Where("id = ? AND version < ?", model.ID, model.Version).
		Updates(map[string]any{
			"title":          model.Title,
			"description":    model.Description,
			"image_url":      model.ImageURL,
			"target_url":     model.TargetURL,
			"badges":         model.Badges,
			"reserved_dates": model.ReservedDates,
			"credits_used":   model.CreditsUsed,
			"status":         model.Status,
			"active":         model.Active,
			"validated_at":   model.ValidatedAt,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update reservation", "reservation_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.conn(ctx).Model(&models.BannerReservationModel{}).
			Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		if count == 0 {
			return banner.ErrReservationNotFound
		}
		r.logger.Warnw("stale reservation write rejected",
			"reservation_id", model.ID, "version", model.Version)
		return banner.ErrStaleReservation
	}
	return nil
}

func (r *ReservationRepositoryImpl) Delete(ctx context.Context, reservationID uint) error {
	conn := r.conn(ctx)

	if err := conn.Where("reservation_id = ?", reservationID).
		Delete(&models.ReservationDateModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete reservation slots: %w", err)
	}

	result := conn.Delete(&models.BannerReservationModel{}, reservationID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return banner.ErrReservationNotFound
	}

	r.logger.Infow("reservation deleted", "reservation_id", reservationID)
	return nil
}

func (r *ReservationRepositoryImpl) GetByID(ctx context.Context, reservationID uint) (*banner.Reservation, error) {
	var model models.BannerReservationModel
	if err := r.conn(ctx).First(&model, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, banner.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return mappers.ReservationToDomain(&model)
}

func (r *ReservationRepositoryImpl) GetBySID(ctx context.Context, sid string) (*banner.Reservation, error) {
	var model models.BannerReservationModel
	if err := r.conn(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, banner.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by SID: %w", err)
	}
	return mappers.ReservationToDomain(&model)
}

func (r *ReservationRepositoryImpl) ListByAccount(ctx context.Context, accountID uint, offset, limit int) ([]*banner.Reservation, int64, error) {
	query := r.conn(ctx).Model(&models.BannerReservationModel{}).Where("account_id = ?", accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	var rows []models.BannerReservationModel
	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}

	return r.toDomainList(rows, total)
}

func (r *ReservationRepositoryImpl) ListByStatus(ctx context.Context, status banner.ReservationStatus, offset, limit int) ([]*banner.Reservation, int64, error) {
	query := r.conn(ctx).Model(&models.BannerReservationModel{}).Where("status = ?", status.String())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	var rows []models.BannerReservationModel
	if err := query.
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}

	return r.toDomainList(rows, total)
}

// ClaimSlots inserts one slot row per date. The statement is not batched so
// the duplicate-key error identifies the first conflicting date.
func (r *ReservationRepositoryImpl) ClaimSlots(ctx context.Context, reservationID uint, position banner.Position, dates []banner.Date) error {
	conn := r.conn(ctx)
	now := time.Now().UTC()

	for _, date := range dates {
		row := models.ReservationDateModel{
			Position:      position.String(),
			Date:          date.String(),
			ReservationID: reservationID,
			CreatedAt:     now,
		}
		if err := conn.Create(&row).Error; err != nil {
			if apperrors.IsDuplicateError(err) {
				r.logger.Warnw("slot already booked",
					"position", position.String(), "date", date.String(), "reservation_id", reservationID)
				return banner.ErrSlotAlreadyBooked
			}
			r.logger.Errorw("failed to claim slot",
				"position", position.String(), "date", date.String(), "error", err)
			return fmt.Errorf("failed to claim slot: %w", err)
		}
	}
	return nil
}

func (r *ReservationRepositoryImpl) ReleaseSlots(ctx context.Context, reservationID uint) error {
	result := r.conn(ctx).Where("reservation_id = ?", reservationID).
		Delete(&models.ReservationDateModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to release slots", "reservation_id", reservationID, "error", result.Error)
		return fmt.Errorf("failed to release slots: %w", result.Error)
	}

	r.logger.Infow("slots released", "reservation_id", reservationID, "count", result.RowsAffected)
	return nil
}

func (r *ReservationRepositoryImpl) BookedDates(ctx context.Context, position banner.Position, from, to banner.Date) ([]banner.Date, error) {
	var rows []string
	err := r.conn(ctx).Model(&models.ReservationDateModel{}).
		Where("position = ? AND date >= ? AND date <= ?", position.String(), from.String(), to.String()).
		Order("date ASC").
		Pluck("date", &rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list booked dates: %w", err)
	}

	dates := make([]banner.Date, 0, len(rows))
	for _, raw := range rows {
		date, err := banner.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date in slot index: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func (r *ReservationRepositoryImpl) IsBooked(ctx context.Context, position banner.Position, date banner.Date) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&models.ReservationDateModel{}).
		Where("position = ? AND date = ?", position.String(), date.String()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return count > 0, nil
}

func (r *ReservationRepositoryImpl) FindServable(ctx context.Context, position banner.Position, date banner.Date) ([]*banner.Reservation, error) {
	var rows []models.BannerReservationModel
	err := r.conn(ctx).Model(&models.BannerReservationModel{}).
		Joins("JOIN reservation_dates ON reservation_dates.reservation_id = banner_reservations.id").
		Where("reservation_dates.position = ? AND reservation_dates.date = ?", position.String(), date.String()).
		Where("banner_reservations.status = ?", banner.ReservationStatusApproved.String()).
		Order("banner_reservations.validated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find servable reservations: %w", err)
	}

	reservations := make([]*banner.Reservation, 0, len(rows))
	for i := range rows {
		reservation, err := mappers.ReservationToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

func (r *ReservationRepositoryImpl) toDomainList(rows []models.BannerReservationModel, total int64) ([]*banner.Reservation, int64, error) {
	reservations := make([]*banner.Reservation, 0, len(rows))
	for i := range rows {
		reservation, err := mappers.ReservationToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, total, nil
}
