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

type ShiftPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewShiftPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ShiftRepository {
	return &ShiftPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (s *ShiftPostgreSQL) GetByID(ctx context.Context, shiftID string) (*models.Shift, error) {
	var shift models.Shift
	err := s.db.WithContext(ctx).Where("shift_id = ?", shiftID).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return &shift, nil
}

// List serves from cache when possible; the shift table is bootstrap data
// and never changes at runtime.
func (s *ShiftPostgreSQL) List(ctx context.Context) ([]*models.Shift, error) {
	var shifts []*models.Shift

	err := s.cacheManager.Shift.CacheOrExecute(ctx, "all", &shifts, cache.ShiftCacheConfig.TTL, func() (interface{}, error) {
		var dbShifts []*models.Shift
		if err := s.db.WithContext(ctx).Order("shift_id").Find(&dbShifts).Error; err != nil {
			return nil, fmt.Errorf("failed to list shifts: %w", err)
		}
		return dbShifts, nil
	})

	return shifts, err
}
