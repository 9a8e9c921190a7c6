package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-cms/folio/internal/db/models"
)

// GormStorage keeps sessions in the admin_sessions table. It is used for sqlite,
// where no gofiber storage driver shares the gorm connection.
type GormStorage struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStorage returns a storage on db. The table is created by db.Migrate.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db, now: time.Now}
}

func (s *GormStorage) GetWithContext(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var row models.Session

	err := s.db.WithContext(ctx).Where(&models.Session{Key: key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if row.ExpiresAt != 0 && row.ExpiresAt <= s.now().Unix() {
		return nil, nil
	}

	return row.Data, nil
}

func (s *GormStorage) Get(key string) ([]byte, error) {
	return s.GetWithContext(context.Background(), key)
}

func (s *GormStorage) SetWithContext(ctx context.Context, key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	row := models.Session{Key: key, Data: val}
	if exp > 0 {
		row.ExpiresAt = s.now().Add(exp).Unix()
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&row).Error
}

func (s *GormStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.SetWithContext(context.Background(), key, val, exp)
}

func (s *GormStorage) DeleteWithContext(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	return s.db.WithContext(ctx).Where(&models.Session{Key: key}).Delete(&models.Session{}).Error
}

func (s *GormStorage) Delete(key string) error {
	return s.DeleteWithContext(context.Background(), key)
}

// ResetWithContext removes every session.
func (s *GormStorage) ResetWithContext(ctx context.Context) error {
	return s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Session{}).Error
}

func (s *GormStorage) Reset() error {
	return s.ResetWithContext(context.Background())
}

// Close is a no-op, the connection belongs to the caller.
func (s *GormStorage) Close() error {
	return nil
}

// DeleteExpired removes every expired session and returns how many were removed.
func (s *GormStorage) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <> 0 AND expires_at <= ?", s.now().Unix()).
		Delete(&models.Session{})

	return res.RowsAffected, res.Error
}

// RunGC removes expired sessions every interval until ctx is done.
func (s *GormStorage) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.DeleteExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("session gc failed")
				continue
			}

			if n > 0 {
				log.Debug().Int64("removed", n).Msg("expired sessions removed")
			}
		}
	}
}
