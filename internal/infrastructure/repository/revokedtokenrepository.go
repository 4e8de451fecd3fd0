package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cinevault-inc/cinevault/internal/domain/auth"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/mappers"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

// RevokedTokenRepository implements the revocation deny-list on the
// revoked_tokens table.
type RevokedTokenRepository struct {
	db     *gorm.DB
	mapper mappers.RevokedTokenMapper
	logger logger.Interface
}

// NewRevokedTokenRepository creates a new revoked token repository
func NewRevokedTokenRepository(gormDB *gorm.DB, logger logger.Interface) auth.RevocationRepository {
	return &RevokedTokenRepository{
		db:     gormDB,
		mapper: mappers.NewRevokedTokenMapper(),
		logger: logger,
	}
}

// IsRevoked reports whether the token instance is on the deny-list. A record
// past its expiry counts as absent and is deleted on the way out, so the
// table self-heals without waiting for the sweep.
func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string, userID uint) (bool, error) {
	var model models.RevokedTokenModel

	err := db.GetTxFromContext(ctx, r.db).Where("jti = ?", jti).First(&model).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		r.logger.Errorw("failed to look up revoked token", "error", err)
		return false, fmt.Errorf("failed to look up revoked token: %w", err)
	}

	record := r.mapper.ToEntity(&model)
	if record.Expired(biztime.NowUTC()) {
		if delErr := db.GetTxFromContext(ctx, r.db).Delete(&models.RevokedTokenModel{}, model.ID).Error; delErr != nil {
			// Lookup still answers correctly; the sweep will retry the delete.
			r.logger.Warnw("failed to delete expired revocation record", "jti", jti, "error", delErr)
		}
		return false, nil
	}

	return true, nil
}

// Revoke adds the token instance to the deny-list. A duplicate jti is
// swallowed by the unique index so concurrent sign-outs of the same token
// both succeed.
func (r *RevokedTokenRepository) Revoke(ctx context.Context, record *auth.RevokedToken) error {
	model := r.mapper.ToModel(record)

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "jti"}},
			DoNothing: true,
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to revoke token", "user_id", record.UserID(), "error", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// SweepExpired deletes every record whose expiry has passed
func (r *RevokedTokenRepository) SweepExpired(ctx context.Context) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("expires_at <= ?", biztime.NowUTC()).
		Delete(&models.RevokedTokenModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to sweep expired revocation records", "error", result.Error)
		return 0, fmt.Errorf("failed to sweep expired revocation records: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// CountByJTI returns the number of records for a jti
func (r *RevokedTokenRepository) CountByJTI(ctx context.Context, jti string) (int64, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).Model(&models.RevokedTokenModel{}).
		Where("jti = ?", jti).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count revocation records: %w", err)
	}

	return count, nil
}
