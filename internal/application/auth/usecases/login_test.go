package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault-inc/cinevault/internal/domain/auth"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	vo "github.com/cinevault-inc/cinevault/internal/domain/user/valueobjects"
	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type mockUserRepo struct {
	users       map[string]*user.User
	boundUserID uint
	boundToken  string
	clearedFor  []uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*user.User)}
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
	return m.users[email], nil
}
func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepo) BindDeviceToken(ctx context.Context, userID uint, token string) error {
	m.boundUserID = userID
	m.boundToken = token
	return nil
}
func (m *mockUserRepo) ClearDeviceToken(ctx context.Context, userID uint) error {
	m.clearedFor = append(m.clearedFor, userID)
	return nil
}
func (m *mockUserRepo) ListWithDeviceTokens(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}

// plainHasher records passwords verbatim so tests control matches without
// paying bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (plainHasher) Verify(password, hash string) error {
	if hash != "hash:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type stubTokenIssuer struct {
	issuedFor uint
	fail      bool
}

func (s *stubTokenIssuer) Issue(userID uint, role authorization.UserRole) (string, string, time.Time, error) {
	if s.fail {
		return "", "", time.Time{}, fmt.Errorf("signing failed")
	}
	s.issuedFor = userID
	return "token-abc", "jti-1", time.Now().UTC().Add(24 * time.Hour), nil
}

type mockRevocationRepo struct {
	revoked []*auth.RevokedToken
	swept   int64
}

func (m *mockRevocationRepo) IsRevoked(ctx context.Context, jti string, userID uint) (bool, error) {
	for _, r := range m.revoked {
		if r.JTI() == jti {
			return true, nil
		}
	}
	return false, nil
}
func (m *mockRevocationRepo) Revoke(ctx context.Context, record *auth.RevokedToken) error {
	for _, r := range m.revoked {
		if r.JTI() == record.JTI() {
			return nil
		}
	}
	m.revoked = append(m.revoked, record)
	return nil
}
func (m *mockRevocationRepo) SweepExpired(ctx context.Context) (int64, error) { return m.swept, nil }
func (m *mockRevocationRepo) CountByJTI(ctx context.Context, jti string) (int64, error) {
	var n int64
	for _, r := range m.revoked {
		if r.JTI() == jti {
			n++
		}
	}
	return n, nil
}

func newTestUser(t *testing.T, userID uint, emailAddr, password string) *user.User {
	t.Helper()
	email, err := vo.NewEmail(emailAddr)
	require.NoError(t, err)
	first, err := vo.NewName("Ada")
	require.NoError(t, err)
	last, err := vo.NewName("Lovelace")
	require.NoError(t, err)
	mobile, err := vo.NewMobileNumber(fmt.Sprintf("+4478%07d", userID))
	require.NoError(t, err)

	hash, _ := plainHasher{}.Hash(password)
	u, err := user.ReconstructUser(
		userID, fmt.Sprintf("usr_test%d", userID),
		email, first, last, mobile,
		authorization.RoleStandard, hash, nil,
		time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return u
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	u := newTestUser(t, 1, "ada@example.com", "correct-horse")
	repo.users["ada@example.com"] = u
	issuer := &stubTokenIssuer{}

	uc := NewLoginUseCase(repo, plainHasher{}, issuer, logger.NewLogger())
	result, err := uc.Execute(context.Background(), LoginCommand{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-abc", result.Token)
	assert.Equal(t, uint(1), result.User.ID())
	assert.Equal(t, uint(1), issuer.issuedFor)
	assert.Empty(t, repo.boundToken)
}

func TestLogin_BindsDeviceToken(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["ada@example.com"] = newTestUser(t, 1, "ada@example.com", "correct-horse")

	uc := NewLoginUseCase(repo, plainHasher{}, &stubTokenIssuer{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), LoginCommand{
		Email:       "ada@example.com",
		Password:    "correct-horse",
		DeviceToken: "device-xyz",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), repo.boundUserID)
	assert.Equal(t, "device-xyz", repo.boundToken)
}

func TestLogin_CaseFoldsEmail(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["ada@example.com"] = newTestUser(t, 1, "ada@example.com", "correct-horse")

	uc := NewLoginUseCase(repo, plainHasher{}, &stubTokenIssuer{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), LoginCommand{
		Email:    "Ada@Example.COM",
		Password: "correct-horse",
	})

	require.NoError(t, err)
}

// Unknown email, wrong password, and malformed email must be
// indistinguishable to the caller.
func TestLogin_FailuresAreUniform(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["ada@example.com"] = newTestUser(t, 1, "ada@example.com", "correct-horse")
	uc := NewLoginUseCase(repo, plainHasher{}, &stubTokenIssuer{}, logger.NewLogger())

	commands := []LoginCommand{
		{Email: "nobody@example.com", Password: "correct-horse"},
		{Email: "ada@example.com", Password: "wrong"},
		{Email: "not-an-email", Password: "correct-horse"},
	}

	var messages []string
	for _, cmd := range commands {
		_, err := uc.Execute(context.Background(), cmd)
		require.Error(t, err)
		var authErr *errors.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, errors.ErrorTypeInvalidCredentials, authErr.Type)
		messages = append(messages, authErr.Message)
	}
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, messages[1], messages[2])
}

func TestLogout_RevokesAndClearsDevice(t *testing.T) {
	userRepo := newMockUserRepo()
	revocations := &mockRevocationRepo{}
	uc := NewLogoutUseCase(revocations, userRepo, logger.NewLogger())

	cmd := LogoutCommand{
		UserID:    1,
		JTI:       "jti-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, uc.Execute(context.Background(), cmd))

	revoked, err := revocations.IsRevoked(context.Background(), "jti-1", 1)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, []uint{1}, userRepo.clearedFor)
}

func TestLogout_Idempotent(t *testing.T) {
	revocations := &mockRevocationRepo{}
	uc := NewLogoutUseCase(revocations, newMockUserRepo(), logger.NewLogger())

	cmd := LogoutCommand{
		UserID:    1,
		JTI:       "jti-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, uc.Execute(context.Background(), cmd))
	require.NoError(t, uc.Execute(context.Background(), cmd))

	count, err := revocations.CountByJTI(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
