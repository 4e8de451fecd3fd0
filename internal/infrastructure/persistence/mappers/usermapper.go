package mappers

import (
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/user"
	vo "github.com/cinevault-inc/cinevault/internal/domain/user/valueobjects"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
)

type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}
	firstName, err := vo.NewName(model.FirstName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse first name: %w", err)
	}
	lastName, err := vo.NewName(model.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last name: %w", err)
	}
	mobile, err := vo.NewMobileNumber(model.MobileNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mobile number: %w", err)
	}

	return user.ReconstructUser(
		model.ID,
		model.SID,
		email,
		firstName, lastName,
		mobile,
		authorization.ParseUserRole(model.Role),
		model.PasswordHash,
		model.DeviceToken,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}

	return &models.UserModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		Email:        entity.Email().String(),
		FirstName:    entity.FirstName().String(),
		LastName:     entity.LastName().String(),
		MobileNumber: entity.MobileNumber().String(),
		Role:         string(entity.Role()),
		PasswordHash: entity.PasswordHash(),
		DeviceToken:  entity.DeviceToken(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(userModels []*models.UserModel) ([]*user.User, error) {
	entities := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
