package mappers

import (
	"github.com/cinevault-inc/cinevault/internal/domain/auth"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
)

type RevokedTokenMapper interface {
	ToEntity(model *models.RevokedTokenModel) *auth.RevokedToken
	ToModel(entity *auth.RevokedToken) *models.RevokedTokenModel
}

type RevokedTokenMapperImpl struct{}

func NewRevokedTokenMapper() RevokedTokenMapper {
	return &RevokedTokenMapperImpl{}
}

func (m *RevokedTokenMapperImpl) ToEntity(model *models.RevokedTokenModel) *auth.RevokedToken {
	if model == nil {
		return nil
	}
	return auth.ReconstructRevokedToken(model.ID, model.JTI, model.UserID, model.ExpiresAt, model.CreatedAt)
}

func (m *RevokedTokenMapperImpl) ToModel(entity *auth.RevokedToken) *models.RevokedTokenModel {
	if entity == nil {
		return nil
	}
	return &models.RevokedTokenModel{
		ID:        entity.ID(),
		JTI:       entity.JTI(),
		UserID:    entity.UserID(),
		ExpiresAt: entity.ExpiresAt(),
		CreatedAt: entity.CreatedAt(),
	}
}
