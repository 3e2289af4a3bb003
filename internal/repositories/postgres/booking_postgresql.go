package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SR-Exam/scheduler-service/internal/cache"
	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

type BookingPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewBookingPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.BookingRepository {
	return &BookingPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (b *BookingPostgreSQL) Create(ctx context.Context, booking *models.ExamTransaction) error {
	if err := b.db.WithContext(ctx).Create(booking).Error; err != nil {
		return err
	}

	// Occupancy projections are stale after any write. Cache failures never
	// fail the write; the TTL bounds staleness.
	_ = b.cacheManager.InvalidateOccupancy(ctx)
	return nil
}

func (b *BookingPostgreSQL) GetByID(ctx context.Context, transactionID string) (*models.ExamTransaction, error) {
	var booking models.ExamTransaction
	err := b.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// List returns every booking, unfiltered; the scheduling UI materializes the
// full set.
func (b *BookingPostgreSQL) List(ctx context.Context) ([]*models.ExamTransaction, error) {
	var bookings []*models.ExamTransaction
	if err := b.db.WithContext(ctx).Order("transaction_id").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (b *BookingPostgreSQL) ListByDate(ctx context.Context, date string) ([]*models.ExamTransaction, error) {
	var bookings []*models.ExamTransaction
	err := b.db.WithContext(ctx).
		Where("transaction_date = ?", date).
		Preload("Subject").
		Preload("Room").
		Preload("Shift").
		Order("shift_id").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by date: %w", err)
	}
	return bookings, nil
}

func (b *BookingPostgreSQL) ListOccupancy(ctx context.Context, date string, roomNumber *string) ([]models.RoomTransaction, error) {
	cacheKey := fmt.Sprintf("date:%s", date)
	if roomNumber != nil {
		cacheKey = fmt.Sprintf("date:%s:room:%s", date, *roomNumber)
	}

	var pairs []models.RoomTransaction
	err := b.cacheManager.Occupancy.CacheOrExecute(ctx, cacheKey, &pairs, cache.OccupancyCacheConfig.TTL, func() (interface{}, error) {
		query := b.db.WithContext(ctx).
			Model(&models.ExamTransaction{}).
			Select("room_number", "shift_id").
			Where("transaction_date = ?", date)
		if roomNumber != nil {
			query = query.Where("room_number = ?", *roomNumber)
		}

		var dbPairs []models.RoomTransaction
		if err := query.Scan(&dbPairs).Error; err != nil {
			return nil, fmt.Errorf("failed to query occupancy: %w", err)
		}
		return dbPairs, nil
	})

	return pairs, err
}

func (b *BookingPostgreSQL) Update(ctx context.Context, booking *models.ExamTransaction) error {
	if err := b.db.WithContext(ctx).Save(booking).Error; err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}
