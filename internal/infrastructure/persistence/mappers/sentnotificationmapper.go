package mappers

import (
	"github.com/cinevault-inc/cinevault/internal/domain/notification"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
)

type SentNotificationMapper interface {
	ToEntity(model *models.SentNotificationModel) *notification.SentNotification
	ToModel(entity *notification.SentNotification) *models.SentNotificationModel
}

type SentNotificationMapperImpl struct{}

func NewSentNotificationMapper() SentNotificationMapper {
	return &SentNotificationMapperImpl{}
}

func (m *SentNotificationMapperImpl) ToEntity(model *models.SentNotificationModel) *notification.SentNotification {
	if model == nil {
		return nil
	}
	action := ""
	if model.Action != nil {
		action = *model.Action
	}
	return notification.ReconstructSentNotification(
		model.ID,
		model.UserID,
		model.MovieID,
		notification.Kind(model.Kind),
		notification.Channel(model.Channel),
		action,
		model.SentAt,
	)
}

func (m *SentNotificationMapperImpl) ToModel(entity *notification.SentNotification) *models.SentNotificationModel {
	if entity == nil {
		return nil
	}
	model := &models.SentNotificationModel{
		ID:      entity.ID(),
		UserID:  entity.UserID(),
		MovieID: entity.MovieID(),
		Kind:    string(entity.Kind()),
		Channel: string(entity.Channel()),
		SentAt:  entity.SentAt(),
	}
	if action := entity.Action(); action != "" {
		model.Action = &action
	}
	return model
}
