package mappers

import (
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	plan, err := subscription.ParsePlan(model.Plan)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	status := subscription.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	return subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		plan,
		status,
		model.StartDate,
		model.EndDate,
		model.BillingCustomerRef,
		model.BillingPaymentRef,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriptionModel{
		ID:                 entity.ID(),
		SID:                entity.SID(),
		UserID:             entity.UserID(),
		Plan:               string(entity.Plan()),
		Status:             string(entity.Status()),
		StartDate:          entity.StartDate(),
		EndDate:            entity.EndDate(),
		BillingCustomerRef: entity.BillingCustomerRef(),
		BillingPaymentRef:  entity.BillingPaymentRef(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}
