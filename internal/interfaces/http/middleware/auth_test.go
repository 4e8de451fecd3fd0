package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/cinevault-inc/cinevault/internal/domain/auth"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	vo "github.com/cinevault-inc/cinevault/internal/domain/user/valueobjects"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/auth"
	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRevocationRepo struct {
	revoked map[string]bool
	err     error
}

func (m *mockRevocationRepo) IsRevoked(ctx context.Context, jti string, userID uint) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.revoked[jti], nil
}

func (m *mockRevocationRepo) Revoke(ctx context.Context, record *domainauth.RevokedToken) error {
	return nil
}

func (m *mockRevocationRepo) SweepExpired(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockRevocationRepo) CountByJTI(ctx context.Context, jti string) (int64, error) {
	return 0, nil
}

type mockUserRepo struct {
	user *user.User
	err  error
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.user, m.err
}
func (m *mockUserRepo) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	return m.user, m.err
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.user, m.err
}
func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepo) BindDeviceToken(ctx context.Context, userID uint, token string) error {
	return nil
}
func (m *mockUserRepo) ClearDeviceToken(ctx context.Context, userID uint) error { return nil }
func (m *mockUserRepo) ListWithDeviceTokens(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)                   {}
func (noopLogger) Info(msg string, args ...any)                    {}
func (noopLogger) Warn(msg string, args ...any)                    {}
func (noopLogger) Error(msg string, args ...any)                   {}
func (n noopLogger) With(args ...any) logger.Interface             { return n }
func (n noopLogger) Named(name string) logger.Interface            { return n }
func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func newAuthTestUser(t *testing.T, role authorization.UserRole) *user.User {
	t.Helper()
	email, err := vo.NewEmail("viewer@example.com")
	require.NoError(t, err)
	first, err := vo.NewName("Grace")
	require.NoError(t, err)
	last, err := vo.NewName("Hopper")
	require.NoError(t, err)
	mobile, err := vo.NewMobileNumber("+14155550100")
	require.NoError(t, err)

	now := time.Now().UTC()
	u, err := user.ReconstructUser(
		7, "usr_test7",
		email, first, last, mobile,
		role, "hash", nil,
		now, now,
	)
	require.NoError(t, err)
	return u
}

type probeResponse struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	JTI    string `json:"jti"`
}

func newProbeRouter(mw *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/probe", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, probeResponse{
			UserID: c.GetUint(constants.ContextKeyUserID),
			Role:   c.GetString(constants.ContextKeyUserRole),
			JTI:    c.GetString(constants.ContextKeyTokenID),
		})
	})
	return r
}

func probe(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func errorType(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Type
}

func TestRequireAuth_Success(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	token, jti, _, err := jwtService.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwtService,
		&mockRevocationRepo{revoked: map[string]bool{}},
		&mockUserRepo{user: newAuthTestUser(t, authorization.RoleStandard)},
		noopLogger{})

	w := probe(newProbeRouter(mw), token)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp probeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.UserID)
	assert.Equal(t, "standard", resp.Role)
	assert.Equal(t, jti, resp.JTI)
}

func TestRequireAuth_RoleComesFromStoredUser(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	token, _, _, err := jwtService.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	// The account was promoted after the token was issued. The stored role
	// wins over the one baked into the claims.
	mw := NewAuthMiddleware(jwtService,
		&mockRevocationRepo{revoked: map[string]bool{}},
		&mockUserRepo{user: newAuthTestUser(t, authorization.RoleSupervisor)},
		noopLogger{})

	w := probe(newProbeRouter(mw), token)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp probeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "supervisor", resp.Role)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	mw := NewAuthMiddleware(auth.NewJWTService("test-secret", 1),
		&mockRevocationRepo{}, &mockUserRepo{}, noopLogger{})

	w := probe(newProbeRouter(mw), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	mw := NewAuthMiddleware(auth.NewJWTService("test-secret", 1),
		&mockRevocationRepo{}, &mockUserRepo{}, noopLogger{})

	w := probe(newProbeRouter(mw), "not.a.jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(errors.ErrorTypeTokenInvalid), errorType(t, w))
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	other := auth.NewJWTService("other-secret", 1)
	token, _, _, err := other.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	mw := NewAuthMiddleware(auth.NewJWTService("test-secret", 1),
		&mockRevocationRepo{}, &mockUserRepo{}, noopLogger{})

	w := probe(newProbeRouter(mw), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(errors.ErrorTypeTokenInvalid), errorType(t, w))
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", -1)
	token, _, _, err := jwtService.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	mw := NewAuthMiddleware(auth.NewJWTService("test-secret", 1),
		&mockRevocationRepo{}, &mockUserRepo{}, noopLogger{})

	w := probe(newProbeRouter(mw), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(errors.ErrorTypeTokenExpired), errorType(t, w))
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	token, jti, _, err := jwtService.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwtService,
		&mockRevocationRepo{revoked: map[string]bool{jti: true}},
		&mockUserRepo{user: newAuthTestUser(t, authorization.RoleStandard)},
		noopLogger{})

	w := probe(newProbeRouter(mw), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(errors.ErrorTypeTokenRevoked), errorType(t, w))
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	token, _, _, err := jwtService.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwtService,
		&mockRevocationRepo{revoked: map[string]bool{}},
		&mockUserRepo{user: nil},
		noopLogger{})

	w := probe(newProbeRouter(mw), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(errors.ErrorTypeTokenInvalid), errorType(t, w))
}

func newLenientProbeRouter(mw *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/probe", mw.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, probeResponse{
			UserID: c.GetUint(constants.ContextKeyUserID),
			JTI:    c.GetString(constants.ContextKeyTokenID),
		})
	})
	return r
}

func TestOptionalAuth_ValidTokenSetsSession(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	token, jti, _, err := jwtService.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwtService,
		&mockRevocationRepo{revoked: map[string]bool{}},
		&mockUserRepo{user: newAuthTestUser(t, authorization.RoleStandard)},
		noopLogger{})

	w := probe(newLenientProbeRouter(mw), token)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp probeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.UserID)
	assert.Equal(t, jti, resp.JTI)
}

func TestOptionalAuth_DeadTokensPassThrough(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1)
	mw := NewAuthMiddleware(jwtService,
		&mockRevocationRepo{revoked: map[string]bool{}},
		&mockUserRepo{},
		noopLogger{})
	r := newLenientProbeRouter(mw)

	expiredService := auth.NewJWTService("test-secret", -1)
	expired, _, _, err := expiredService.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing": "",
		"garbage": "not.a.token",
		"expired": expired,
	} {
		w := probe(r, token)
		assert.Equal(t, http.StatusOK, w.Code, name)

		var resp probeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Zero(t, resp.UserID, name)
		assert.Empty(t, resp.JTI, name)
	}
}

func TestOptionalAuth_RevokedTokenStillDecodes(t *testing.T) {
	// A second sign-out presents a token that is already on the deny list.
	// The lenient decoder hands it through so the revocation can be repeated
	// idempotently instead of the request being rejected.
	jwtService := auth.NewJWTService("test-secret", 1)
	token, jti, _, err := jwtService.Issue(7, authorization.RoleStandard)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwtService,
		&mockRevocationRepo{revoked: map[string]bool{jti: true}},
		&mockUserRepo{user: newAuthTestUser(t, authorization.RoleStandard)},
		noopLogger{})

	w := probe(newLenientProbeRouter(mw), token)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp probeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.UserID)
	assert.Equal(t, jti, resp.JTI)
}

func TestRequireCatalogManager(t *testing.T) {
	r := gin.New()
	r.POST("/movies",
		func(c *gin.Context) { c.Set(constants.ContextKeyUserRole, "standard") },
		RequireCatalogManager(),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/movies", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	r2 := gin.New()
	r2.POST("/movies",
		func(c *gin.Context) { c.Set(constants.ContextKeyUserRole, "supervisor") },
		RequireCatalogManager(),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)

	w2 := httptest.NewRecorder()
	r2.ServeHTTP(w2, httptest.NewRequest(http.MethodPost, "/movies", nil))
	assert.Equal(t, http.StatusCreated, w2.Code)
}
