package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	domainnotification "github.com/cinevault-inc/cinevault/internal/domain/notification"
	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	vo "github.com/cinevault-inc/cinevault/internal/domain/user/valueobjects"
	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type mockUserRepo struct {
	users []*user.User
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	for _, u := range m.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
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
	var holders []*user.User
	for _, u := range m.users {
		if u.DeviceToken() != nil {
			holders = append(holders, u)
		}
	}
	return holders, nil
}

type ledgerKey struct {
	userID  uint
	movieID uint
	kind    domainnotification.Kind
	channel domainnotification.Channel
}

type mockLedger struct {
	seen map[ledgerKey]bool
}

func newMockLedger() *mockLedger {
	return &mockLedger{seen: make(map[ledgerKey]bool)}
}

func (m *mockLedger) Record(ctx context.Context, n *domainnotification.SentNotification) (bool, error) {
	key := ledgerKey{userID: n.UserID(), kind: n.Kind(), channel: n.Channel()}
	if n.MovieID() != nil {
		key.movieID = *n.MovieID()
	}
	// Movie-less entries are never deduplicated; each subscription event is
	// a fresh message.
	if key.movieID != 0 && m.seen[key] {
		return true, nil
	}
	m.seen[key] = true
	return false, nil
}

func (m *mockLedger) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for key := range m.seen {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

type sentPush struct {
	token string
	title string
	data  map[string]string
}

type mockPushSender struct {
	sent []sentPush
	err  error
}

func (m *mockPushSender) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentPush{token: deviceToken, title: title, data: data})
	return nil
}

type mockWhatsAppSender struct {
	sent []string
}

func (m *mockWhatsAppSender) Send(ctx context.Context, to, body string) error {
	m.sent = append(m.sent, to)
	return nil
}

func newTestUser(t *testing.T, userID uint, deviceToken string) *user.User {
	t.Helper()

	email, err := vo.NewEmail(fmt.Sprintf("user%d@example.com", userID))
	require.NoError(t, err)
	firstName, err := vo.NewName("Test")
	require.NoError(t, err)
	lastName, err := vo.NewName("Viewer")
	require.NoError(t, err)
	mobile, err := vo.NewMobileNumber(fmt.Sprintf("+4478%07d", userID))
	require.NoError(t, err)

	var token *string
	if deviceToken != "" {
		token = &deviceToken
	}
	u, err := user.ReconstructUser(userID, fmt.Sprintf("usr_%d", userID), email, firstName, lastName, mobile,
		authorization.RoleStandard, "hash", token, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func newTestMovie(t *testing.T) *movie.Movie {
	t.Helper()

	m, err := movie.ReconstructMovie(42, "mov_test42", movie.Attributes{
		Title:             "Blade Sprinter",
		Genre:             "sci-fi",
		ReleaseYear:       2017,
		Rating:            8.1,
		Director:          "D. Villeneuve",
		DurationMinutes:   164,
		MainLead:          "R. Gosling",
		StreamingPlatform: "netflix",
		Description:       "Neo-noir sequel.",
	}, time.Now(), time.Now())
	require.NoError(t, err)
	return m
}

func TestDispatcher_NotifyNewMovieFansOutToTokenHolders(t *testing.T) {
	userRepo := &mockUserRepo{users: []*user.User{
		newTestUser(t, 1, "token-1"),
		newTestUser(t, 2, ""),
		newTestUser(t, 3, "token-3"),
	}}
	ledger := newMockLedger()
	push := &mockPushSender{}

	d := NewDispatcher(userRepo, ledger, push, &mockWhatsAppSender{}, logger.NewLogger())
	d.NotifyNewMovie(context.Background(), newTestMovie(t))

	require.Len(t, push.sent, 2)
	assert.Equal(t, "token-1", push.sent[0].token)
	assert.Equal(t, "token-3", push.sent[1].token)
	assert.Equal(t, "New on CineVault: Blade Sprinter", push.sent[0].title)
	assert.Equal(t, "mov_test42", push.sent[0].data["movie_sid"])
}

func TestDispatcher_NotifyNewMovieIsIdempotent(t *testing.T) {
	userRepo := &mockUserRepo{users: []*user.User{newTestUser(t, 1, "token-1")}}
	ledger := newMockLedger()
	push := &mockPushSender{}

	d := NewDispatcher(userRepo, ledger, push, &mockWhatsAppSender{}, logger.NewLogger())
	m := newTestMovie(t)
	d.NotifyNewMovie(context.Background(), m)
	d.NotifyNewMovie(context.Background(), m)

	assert.Len(t, push.sent, 1)
}

func TestDispatcher_PushFailureDoesNotStopFanOut(t *testing.T) {
	userRepo := &mockUserRepo{users: []*user.User{
		newTestUser(t, 1, "token-1"),
		newTestUser(t, 2, "token-2"),
	}}
	push := &mockPushSender{err: fmt.Errorf("provider down")}

	d := NewDispatcher(userRepo, newMockLedger(), push, &mockWhatsAppSender{}, logger.NewLogger())
	d.NotifyNewMovie(context.Background(), newTestMovie(t))

	assert.Empty(t, push.sent)
}

func TestDispatcher_DispatchEffects(t *testing.T) {
	userRepo := &mockUserRepo{users: []*user.User{newTestUser(t, 1, "token-1")}}
	ledger := newMockLedger()
	push := &mockPushSender{}
	whatsapp := &mockWhatsAppSender{}

	d := NewDispatcher(userRepo, ledger, push, whatsapp, logger.NewLogger())
	d.DispatchEffects(context.Background(), []subscription.Effect{
		{Kind: subscription.EffectNotifyActivated, UserID: 1, Plan: subscription.PlanPremium},
	})

	require.Len(t, push.sent, 1)
	assert.Equal(t, "Subscription activated", push.sent[0].title)
	require.Len(t, whatsapp.sent, 1)
	assert.Equal(t, "+44780000001", whatsapp.sent[0])
}

func TestDispatcher_PaymentFailedEffect(t *testing.T) {
	userRepo := &mockUserRepo{users: []*user.User{newTestUser(t, 1, "token-1")}}
	push := &mockPushSender{}

	d := NewDispatcher(userRepo, newMockLedger(), push, &mockWhatsAppSender{}, logger.NewLogger())
	d.DispatchEffects(context.Background(), []subscription.Effect{
		{Kind: subscription.EffectNotifyPaymentFailed, UserID: 1, Plan: subscription.PlanBasic},
	})

	require.Len(t, push.sent, 1)
	assert.Equal(t, "Payment failed", push.sent[0].title)
}

func TestDispatcher_UnknownUserIsSkipped(t *testing.T) {
	push := &mockPushSender{}

	d := NewDispatcher(&mockUserRepo{}, newMockLedger(), push, &mockWhatsAppSender{}, logger.NewLogger())
	d.DispatchEffects(context.Background(), []subscription.Effect{
		{Kind: subscription.EffectNotifyActivated, UserID: 99, Plan: subscription.PlanBasic},
	})

	assert.Empty(t, push.sent)
}
