package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cinevault-inc/cinevault/internal/application/subscription/billing"
	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	vo "github.com/cinevault-inc/cinevault/internal/domain/user/valueobjects"
	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/config"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type mockSubscriptionRepo struct {
	byUserID  map[uint]*subscription.Subscription
	nextID    uint
	updateErr error
	deleted   []uint
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{byUserID: make(map[uint]*subscription.Subscription), nextID: 100}
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, s *subscription.Subscription) error {
	if err := s.SetID(m.nextID); err != nil {
		return err
	}
	m.nextID++
	m.byUserID[s.UserID()] = s
	return nil
}
func (m *mockSubscriptionRepo) Update(ctx context.Context, s *subscription.Subscription) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.byUserID[s.UserID()] = s
	return nil
}
func (m *mockSubscriptionRepo) GetByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	return m.byUserID[userID], nil
}
func (m *mockSubscriptionRepo) GetByUserIDForUpdate(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	return m.byUserID[userID], nil
}
func (m *mockSubscriptionRepo) GetByBillingCustomerRef(ctx context.Context, ref string) (*subscription.Subscription, error) {
	for _, s := range m.byUserID {
		if s.BillingCustomerRef() != nil && *s.BillingCustomerRef() == ref {
			return s, nil
		}
	}
	return nil, nil
}
func (m *mockSubscriptionRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	m.deleted = append(m.deleted, userID)
	delete(m.byUserID, userID)
	return nil
}

type mockUserRepo struct {
	byID map[uint]*user.User
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.byID[id], nil
}
func (m *mockUserRepo) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	return nil, nil
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepo) BindDeviceToken(ctx context.Context, userID uint, token string) error {
	return nil
}
func (m *mockUserRepo) ClearDeviceToken(ctx context.Context, userID uint) error { return nil }
func (m *mockUserRepo) ListWithDeviceTokens(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}

type mockGateway struct {
	customerSeq     int
	intentSeq       int
	intentStatus    string
	createIntentErr error
	retrieveErr     error
	lastMetadata    map[string]string
}

func (m *mockGateway) CreateCustomer(ctx context.Context, email, name string) (*billing.Customer, error) {
	m.customerSeq++
	return &billing.Customer{Ref: fmt.Sprintf("cus_%d", m.customerSeq)}, nil
}
func (m *mockGateway) CreatePaymentIntent(ctx context.Context, customerRef string, amountCents int64, currency string, metadata map[string]string) (*billing.PaymentIntent, error) {
	if m.createIntentErr != nil {
		return nil, m.createIntentErr
	}
	m.intentSeq++
	m.lastMetadata = metadata
	return &billing.PaymentIntent{
		Ref:          fmt.Sprintf("pi_%d", m.intentSeq),
		ClientSecret: fmt.Sprintf("pi_%d_secret", m.intentSeq),
		Status:       billing.IntentStatusRequiresPayment,
		AmountCents:  amountCents,
		Currency:     currency,
	}, nil
}
func (m *mockGateway) RetrievePaymentIntent(ctx context.Context, ref string) (*billing.PaymentIntent, error) {
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	status := m.intentStatus
	if status == "" {
		status = billing.IntentStatusSucceeded
	}
	return &billing.PaymentIntent{Ref: ref, Status: status}, nil
}

type mockEventClaimer struct {
	claimed  map[string]bool
	claimErr error
	released []string
}

func newMockEventClaimer() *mockEventClaimer {
	return &mockEventClaimer{claimed: make(map[string]bool)}
}

func (m *mockEventClaimer) Claim(ctx context.Context, eventID string) (bool, error) {
	if m.claimErr != nil {
		return false, m.claimErr
	}
	if m.claimed[eventID] {
		return false, nil
	}
	m.claimed[eventID] = true
	return true, nil
}
func (m *mockEventClaimer) Release(ctx context.Context, eventID string) error {
	m.released = append(m.released, eventID)
	delete(m.claimed, eventID)
	return nil
}

type recordingDispatcher struct {
	got chan []subscription.Effect
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{got: make(chan []subscription.Effect, 4)}
}

func (r *recordingDispatcher) DispatchEffects(ctx context.Context, effects []subscription.Effect) {
	r.got <- effects
}

func (r *recordingDispatcher) waitForEffects(t *testing.T) []subscription.Effect {
	t.Helper()
	select {
	case effects := <-r.got:
		return effects
	case <-time.After(time.Second):
		t.Fatal("effects were never dispatched")
		return nil
	}
}

func newTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db.NewTransactionManager(gormDB)
}

func testSubscriptionCfg() config.SubscriptionConfig {
	return config.SubscriptionConfig{
		Currency: "usd",
		Plans: map[string]config.PlanConfig{
			"basic":   {AmountCents: 999, DurationDays: 7},
			"premium": {AmountCents: 1999, DurationDays: 30},
		},
	}
}

func newTestUser(t *testing.T, userID uint) *user.User {
	t.Helper()
	email, err := vo.NewEmail(fmt.Sprintf("user%d@example.com", userID))
	require.NoError(t, err)
	first, err := vo.NewName("Test")
	require.NoError(t, err)
	last, err := vo.NewName("Viewer")
	require.NoError(t, err)
	mobile, err := vo.NewMobileNumber(fmt.Sprintf("+4478%07d", userID))
	require.NoError(t, err)
	u, err := user.ReconstructUser(userID, fmt.Sprintf("usr_%d", userID), email, first, last, mobile,
		authorization.RoleStandard, "hash", nil, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func seedFree(t *testing.T, repo *mockSubscriptionRepo, userID uint) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.NewFreeSubscription(fmt.Sprintf("sub_free%d", userID), userID, biztime.NowUTC())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sub))
	return sub
}

func seedPending(t *testing.T, repo *mockSubscriptionRepo, userID uint, plan subscription.Plan) *subscription.Subscription {
	t.Helper()
	now := biztime.NowUTC()
	sub, err := subscription.NewPendingSubscription(fmt.Sprintf("sub_pend%d", userID), userID, plan, now.Add(7*24*time.Hour), now)
	require.NoError(t, err)
	require.NoError(t, sub.AttachBillingCustomer(fmt.Sprintf("cus_seed%d", userID)))
	require.NoError(t, sub.AttachPaymentIntent(fmt.Sprintf("pi_seed%d", userID)))
	require.NoError(t, repo.Create(context.Background(), sub))
	return sub
}

func seedActivePaid(t *testing.T, repo *mockSubscriptionRepo, userID uint, plan subscription.Plan, end time.Time) *subscription.Subscription {
	t.Helper()
	sub := seedPending(t, repo, userID, plan)
	_, err := sub.Activate(*sub.BillingPaymentRef(), end, biztime.NowUTC())
	require.NoError(t, err)
	return sub
}

func assertStateConflict(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeStateConflict, appErr.Type)
}

func TestInitiate_RejectsUnknownPlans(t *testing.T) {
	uc := NewInitiateSubscriptionUseCase(
		newMockSubscriptionRepo(), &mockUserRepo{byID: map[uint]*user.User{1: newTestUser(t, 1)}},
		&mockGateway{}, testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	for _, plan := range []string{"platinum", ""} {
		_, err := uc.Execute(context.Background(), InitiateSubscriptionCommand{UserID: 1, Plan: plan})
		require.Error(t, err, plan)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	}
}

func TestInitiate_FreeReplacesPaidRowWithoutGateway(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(20 * 24 * time.Hour)
	seedActivePaid(t, repo, 1, subscription.PlanPremium, end)
	gateway := &mockGateway{}
	uc := NewInitiateSubscriptionUseCase(
		repo, &mockUserRepo{byID: map[uint]*user.User{1: newTestUser(t, 1)}},
		gateway, testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	result, err := uc.Execute(context.Background(), InitiateSubscriptionCommand{UserID: 1, Plan: "free"})
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, repo.deleted)
	sub := repo.byUserID[1]
	require.NotNil(t, sub)
	assert.Equal(t, subscription.PlanFree, sub.Plan())
	assert.Equal(t, subscription.StatusActive, sub.Status())
	assert.Nil(t, sub.EndDate())
	assert.Nil(t, sub.BillingCustomerRef())
	assert.Nil(t, sub.BillingPaymentRef())

	assert.Empty(t, result.ClientSecret)
	assert.Zero(t, result.AmountCents)
	assert.Zero(t, gateway.customerSeq)
	assert.Zero(t, gateway.intentSeq)
}

func TestInitiate_FreeIsIdempotentInEffect(t *testing.T) {
	repo := newMockSubscriptionRepo()
	uc := NewInitiateSubscriptionUseCase(
		repo, &mockUserRepo{byID: map[uint]*user.User{1: newTestUser(t, 1)}},
		&mockGateway{}, testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	first, err := uc.Execute(context.Background(), InitiateSubscriptionCommand{UserID: 1, Plan: "free"})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), InitiateSubscriptionCommand{UserID: 1, Plan: "free"})
	require.NoError(t, err)

	// The row is replaced but converges to the same state.
	assert.NotEqual(t, first.Subscription.SID(), second.Subscription.SID())
	assert.Equal(t, subscription.PlanFree, second.Subscription.Plan())
	assert.Equal(t, subscription.StatusActive, second.Subscription.Status())
	assert.Nil(t, second.Subscription.EndDate())
}

func TestInitiate_ReplacesFreeRowWithPending(t *testing.T) {
	repo := newMockSubscriptionRepo()
	seedFree(t, repo, 1)
	gateway := &mockGateway{}
	uc := NewInitiateSubscriptionUseCase(
		repo, &mockUserRepo{byID: map[uint]*user.User{1: newTestUser(t, 1)}},
		gateway, testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	result, err := uc.Execute(context.Background(), InitiateSubscriptionCommand{UserID: 1, Plan: "premium"})
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, repo.deleted)
	sub := repo.byUserID[1]
	require.NotNil(t, sub)
	assert.Equal(t, subscription.PlanPremium, sub.Plan())
	assert.Equal(t, subscription.StatusPending, sub.Status())
	require.NotNil(t, sub.BillingCustomerRef())
	require.NotNil(t, sub.BillingPaymentRef())

	assert.Equal(t, "pi_1_secret", result.ClientSecret)
	assert.Equal(t, int64(1999), result.AmountCents)
	assert.Equal(t, "usd", result.Currency)
	assert.Equal(t, "premium", gateway.lastMetadata["plan"])
}

func TestInitiate_ReusesExistingBillingCustomer(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(30 * 24 * time.Hour)
	existing := seedActivePaid(t, repo, 1, subscription.PlanBasic, end)
	existingCustomer := *existing.BillingCustomerRef()

	gateway := &mockGateway{}
	uc := NewInitiateSubscriptionUseCase(
		repo, &mockUserRepo{byID: map[uint]*user.User{1: newTestUser(t, 1)}},
		gateway, testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), InitiateSubscriptionCommand{UserID: 1, Plan: "premium"})
	require.NoError(t, err)

	assert.Zero(t, gateway.customerSeq, "should not create a second gateway customer")
	assert.Equal(t, existingCustomer, *repo.byUserID[1].BillingCustomerRef())
}

func TestInitiate_GatewayFailureKeepsCurrentSubscription(t *testing.T) {
	repo := newMockSubscriptionRepo()
	seedFree(t, repo, 1)
	gateway := &mockGateway{createIntentErr: errors.NewGatewayError("payment gateway unreachable", true)}
	uc := NewInitiateSubscriptionUseCase(
		repo, &mockUserRepo{byID: map[uint]*user.User{1: newTestUser(t, 1)}},
		gateway, testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), InitiateSubscriptionCommand{UserID: 1, Plan: "basic"})
	require.Error(t, err)

	sub := repo.byUserID[1]
	require.NotNil(t, sub)
	assert.Equal(t, subscription.PlanFree, sub.Plan())
	assert.Empty(t, repo.deleted)
}

func TestConfirm_ActivatesPendingSubscription(t *testing.T) {
	repo := newMockSubscriptionRepo()
	seedPending(t, repo, 1, subscription.PlanPremium)
	dispatcher := newRecordingDispatcher()
	uc := NewConfirmSubscriptionUseCase(
		repo, &mockGateway{intentStatus: billing.IntentStatusSucceeded},
		dispatcher, testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	result, err := uc.Execute(context.Background(), ConfirmSubscriptionCommand{UserID: 1})
	require.NoError(t, err)

	sub := result.Subscription
	assert.Equal(t, subscription.StatusActive, sub.Status())
	require.NotNil(t, sub.EndDate())
	expectedEnd := biztime.NowUTC().Add(30 * 24 * time.Hour)
	assert.WithinDuration(t, expectedEnd, *sub.EndDate(), 5*time.Second)

	effects := dispatcher.waitForEffects(t)
	require.Len(t, effects, 1)
	assert.Equal(t, subscription.EffectNotifyActivated, effects[0].Kind)
	assert.Equal(t, uint(1), effects[0].UserID)
}

func TestConfirm_RequiresPendingSubscription(t *testing.T) {
	repo := newMockSubscriptionRepo()
	seedFree(t, repo, 1)
	uc := NewConfirmSubscriptionUseCase(
		repo, &mockGateway{}, newRecordingDispatcher(),
		testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ConfirmSubscriptionCommand{UserID: 1})
	assertStateConflict(t, err)
}

func TestConfirm_MatchingIntentEchoAccepted(t *testing.T) {
	repo := newMockSubscriptionRepo()
	sub := seedPending(t, repo, 1, subscription.PlanBasic)
	uc := NewConfirmSubscriptionUseCase(
		repo, &mockGateway{intentStatus: billing.IntentStatusSucceeded},
		newRecordingDispatcher(), testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ConfirmSubscriptionCommand{
		UserID:           1,
		PaymentIntentRef: *sub.BillingPaymentRef(),
	})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, repo.byUserID[1].Status())
}

func TestConfirm_RejectsForeignPaymentIntent(t *testing.T) {
	repo := newMockSubscriptionRepo()
	seedPending(t, repo, 1, subscription.PlanBasic)
	uc := NewConfirmSubscriptionUseCase(
		repo, &mockGateway{intentStatus: billing.IntentStatusSucceeded},
		newRecordingDispatcher(), testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ConfirmSubscriptionCommand{
		UserID:           1,
		PaymentIntentRef: "pi_someone_elses",
	})
	assertStateConflict(t, err)
	assert.Equal(t, subscription.StatusPending, repo.byUserID[1].Status())
}

func TestConfirm_RequiresSucceededIntent(t *testing.T) {
	repo := newMockSubscriptionRepo()
	seedPending(t, repo, 1, subscription.PlanBasic)
	uc := NewConfirmSubscriptionUseCase(
		repo, &mockGateway{intentStatus: billing.IntentStatusProcessing},
		newRecordingDispatcher(), testSubscriptionCfg(), newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), ConfirmSubscriptionCommand{UserID: 1})
	assertStateConflict(t, err)

	assert.Equal(t, subscription.StatusPending, repo.byUserID[1].Status())
}

func TestCancel_PreservesEndDate(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(20 * 24 * time.Hour)
	seedActivePaid(t, repo, 1, subscription.PlanPremium, end)
	uc := NewCancelSubscriptionUseCase(repo, newTxManager(t), logger.NewLogger())

	result, err := uc.Execute(context.Background(), CancelSubscriptionCommand{UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, subscription.StatusCanceled, result.Subscription.Status())
	require.NotNil(t, result.Subscription.EndDate())
	assert.WithinDuration(t, end, *result.Subscription.EndDate(), time.Second)
}

func TestCancel_MissingRowRestoresFreeSubscription(t *testing.T) {
	repo := newMockSubscriptionRepo()
	uc := NewCancelSubscriptionUseCase(repo, newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{UserID: 1})
	assertStateConflict(t, err)

	sub := repo.byUserID[1]
	require.NotNil(t, sub, "the default free row should be restored")
	assert.Equal(t, subscription.PlanFree, sub.Plan())
	assert.Equal(t, subscription.StatusActive, sub.Status())
	assert.Nil(t, sub.EndDate())
}

func TestCancel_FreePlanConflicts(t *testing.T) {
	repo := newMockSubscriptionRepo()
	seedFree(t, repo, 1)
	uc := NewCancelSubscriptionUseCase(repo, newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{UserID: 1})
	assertStateConflict(t, err)
}

func TestCancel_AlreadyCanceledConflicts(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(20 * 24 * time.Hour)
	sub := seedActivePaid(t, repo, 1, subscription.PlanPremium, end)
	require.NoError(t, sub.Cancel(biztime.NowUTC()))
	uc := NewCancelSubscriptionUseCase(repo, newTxManager(t), logger.NewLogger())

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{UserID: 1})
	assertStateConflict(t, err)
}

func TestGetStatus_ActivePaid(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(20 * 24 * time.Hour)
	seedActivePaid(t, repo, 1, subscription.PlanPremium, end)
	uc := NewGetSubscriptionStatusUseCase(repo, newTxManager(t), logger.NewLogger())

	result, err := uc.Execute(context.Background(), GetSubscriptionStatusCommand{UserID: 1})
	require.NoError(t, err)
	assert.True(t, result.CanAccessPremium)
	assert.Equal(t, subscription.StatusActive, result.Subscription.Status())
}

func TestGetStatus_CanceledInGraceKeepsAccess(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(48 * time.Hour)
	sub := seedActivePaid(t, repo, 1, subscription.PlanBasic, end)
	require.NoError(t, sub.Cancel(biztime.NowUTC()))
	uc := NewGetSubscriptionStatusUseCase(repo, newTxManager(t), logger.NewLogger())

	result, err := uc.Execute(context.Background(), GetSubscriptionStatusCommand{UserID: 1})
	require.NoError(t, err)
	assert.True(t, result.CanAccessPremium)
	assert.Equal(t, subscription.StatusCanceled, result.Subscription.Status())
}

func TestGetStatus_CollapsesExpiredCanceledRow(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(-time.Hour)
	sub := seedActivePaid(t, repo, 1, subscription.PlanPremium, end)
	// Cancel predates the end date in real flows; status is what matters.
	require.NoError(t, sub.Cancel(biztime.NowUTC()))
	uc := NewGetSubscriptionStatusUseCase(repo, newTxManager(t), logger.NewLogger())

	result, err := uc.Execute(context.Background(), GetSubscriptionStatusCommand{UserID: 1})
	require.NoError(t, err)

	assert.False(t, result.CanAccessPremium)
	assert.Equal(t, subscription.PlanFree, result.Subscription.Plan())
	assert.Equal(t, subscription.StatusActive, result.Subscription.Status())
	assert.Nil(t, result.Subscription.EndDate())
	assert.Equal(t, []uint{1}, repo.deleted)
}

func TestGetStatus_PendingHasNoPremiumAccess(t *testing.T) {
	repo := newMockSubscriptionRepo()
	seedPending(t, repo, 1, subscription.PlanPremium)
	uc := NewGetSubscriptionStatusUseCase(repo, newTxManager(t), logger.NewLogger())

	result, err := uc.Execute(context.Background(), GetSubscriptionStatusCommand{UserID: 1})
	require.NoError(t, err)
	assert.False(t, result.CanAccessPremium)
}

func newWebhookUseCase(t *testing.T, repo *mockSubscriptionRepo, events EventClaimer, dispatcher EffectDispatcher) *HandleWebhookUseCase {
	t.Helper()
	return NewHandleWebhookUseCase(repo, events, dispatcher,
		testSubscriptionCfg(), newTxManager(t), logger.NewLogger())
}

func TestHandleWebhook_SucceededActivatesPending(t *testing.T) {
	repo := newMockSubscriptionRepo()
	sub := seedPending(t, repo, 1, subscription.PlanBasic)
	dispatcher := newRecordingDispatcher()
	uc := newWebhookUseCase(t, repo, newMockEventClaimer(), dispatcher)

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:          "evt_1",
		EventType:        EventPaymentSucceeded,
		PaymentIntentRef: *sub.BillingPaymentRef(),
		CustomerRef:      *sub.BillingCustomerRef(),
	})
	require.NoError(t, err)

	assert.Equal(t, subscription.StatusActive, repo.byUserID[1].Status())
	effects := dispatcher.waitForEffects(t)
	require.Len(t, effects, 1)
	assert.Equal(t, subscription.EffectNotifyActivated, effects[0].Kind)
}

func TestHandleWebhook_DuplicateDeliverySkipped(t *testing.T) {
	repo := newMockSubscriptionRepo()
	sub := seedPending(t, repo, 1, subscription.PlanBasic)
	events := newMockEventClaimer()
	events.claimed["evt_1"] = true
	uc := newWebhookUseCase(t, repo, events, newRecordingDispatcher())

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:          "evt_1",
		EventType:        EventPaymentSucceeded,
		PaymentIntentRef: *sub.BillingPaymentRef(),
		CustomerRef:      *sub.BillingCustomerRef(),
	})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusPending, repo.byUserID[1].Status())
}

func TestHandleWebhook_SucceededOnActiveIsAcked(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(7 * 24 * time.Hour)
	sub := seedActivePaid(t, repo, 1, subscription.PlanBasic, end)
	uc := newWebhookUseCase(t, repo, newMockEventClaimer(), newRecordingDispatcher())

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:          "evt_2",
		EventType:        EventPaymentSucceeded,
		PaymentIntentRef: *sub.BillingPaymentRef(),
		CustomerRef:      *sub.BillingCustomerRef(),
	})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, repo.byUserID[1].Status())
}

func TestHandleWebhook_StaleIntentIgnored(t *testing.T) {
	repo := newMockSubscriptionRepo()
	sub := seedPending(t, repo, 1, subscription.PlanBasic)
	uc := newWebhookUseCase(t, repo, newMockEventClaimer(), newRecordingDispatcher())

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:          "evt_3",
		EventType:        EventPaymentSucceeded,
		PaymentIntentRef: "pi_from_replaced_attempt",
		CustomerRef:      *sub.BillingCustomerRef(),
	})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusPending, repo.byUserID[1].Status())
}

func TestHandleWebhook_PaymentFailedMarksPastDue(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(7 * 24 * time.Hour)
	sub := seedActivePaid(t, repo, 1, subscription.PlanBasic, end)
	dispatcher := newRecordingDispatcher()
	uc := newWebhookUseCase(t, repo, newMockEventClaimer(), dispatcher)

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:     "evt_4",
		EventType:   EventInvoiceFailed,
		CustomerRef: *sub.BillingCustomerRef(),
	})
	require.NoError(t, err)

	assert.Equal(t, subscription.StatusPastDue, repo.byUserID[1].Status())
	effects := dispatcher.waitForEffects(t)
	require.Len(t, effects, 1)
	assert.Equal(t, subscription.EffectNotifyPaymentFailed, effects[0].Kind)
}

func TestHandleWebhook_PaymentFailedNeverOverwritesCanceled(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(7 * 24 * time.Hour)
	sub := seedActivePaid(t, repo, 1, subscription.PlanBasic, end)
	require.NoError(t, sub.Cancel(biztime.NowUTC()))
	uc := newWebhookUseCase(t, repo, newMockEventClaimer(), newRecordingDispatcher())

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:     "evt_5",
		EventType:   EventInvoiceFailed,
		CustomerRef: *sub.BillingCustomerRef(),
	})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusCanceled, repo.byUserID[1].Status())
}

func TestHandleWebhook_UnknownEventAcked(t *testing.T) {
	uc := newWebhookUseCase(t, newMockSubscriptionRepo(), newMockEventClaimer(), newRecordingDispatcher())

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:   "evt_6",
		EventType: "customer.created",
	})
	require.NoError(t, err)
}

func TestHandleWebhook_UnknownCustomerAcked(t *testing.T) {
	uc := newWebhookUseCase(t, newMockSubscriptionRepo(), newMockEventClaimer(), newRecordingDispatcher())

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:          "evt_7",
		EventType:        EventPaymentSucceeded,
		PaymentIntentRef: "pi_x",
		CustomerRef:      "cus_unknown",
	})
	require.NoError(t, err)
}

func TestHandleWebhook_FailureReleasesClaim(t *testing.T) {
	repo := newMockSubscriptionRepo()
	end := biztime.NowUTC().Add(7 * 24 * time.Hour)
	sub := seedActivePaid(t, repo, 1, subscription.PlanBasic, end)
	repo.updateErr = fmt.Errorf("connection reset")
	events := newMockEventClaimer()
	uc := newWebhookUseCase(t, repo, events, newRecordingDispatcher())

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:     "evt_8",
		EventType:   EventInvoiceFailed,
		CustomerRef: *sub.BillingCustomerRef(),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"evt_8"}, events.released)
}

func TestHandleWebhook_ClaimOutageStillProcesses(t *testing.T) {
	repo := newMockSubscriptionRepo()
	sub := seedPending(t, repo, 1, subscription.PlanBasic)
	events := newMockEventClaimer()
	events.claimErr = fmt.Errorf("redis down")
	uc := newWebhookUseCase(t, repo, events, newRecordingDispatcher())

	err := uc.Execute(context.Background(), HandleWebhookCommand{
		EventID:          "evt_9",
		EventType:        EventPaymentSucceeded,
		PaymentIntentRef: *sub.BillingPaymentRef(),
		CustomerRef:      *sub.BillingCustomerRef(),
	})
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, repo.byUserID[1].Status())
}
