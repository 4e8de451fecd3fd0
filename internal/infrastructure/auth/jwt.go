package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
)

// Decode failure modes. Callers treat expired and invalid as unauthenticated;
// incomplete means the token verified but its payload is missing claims,
// which is a client bug rather than an attack.
var (
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenInvalid    = errors.New("token signature or format is invalid")
	ErrTokenIncomplete = errors.New("token payload is incomplete")
)

// Claims is the signed payload of a session token. The RegisteredClaims ID
// field carries the token-instance ID (jti), the unit of revocation.
type Claims struct {
	UserID uint                   `json:"user_id"`
	Role   authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session tokens with a process-wide HS256
// secret injected at startup. Rotating the secret invalidates every
// outstanding token at once; that is the intended fail-safe and is rolled
// out via redeploy, never handled silently.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(secret string, ttlHours int) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

// TTL returns the configured token lifetime.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a session token for the user with a fresh random token-instance
// ID. Prior tokens for the same user stay valid until they expire or are
// individually revoked.
func (s *JWTService) Issue(userID uint, role authorization.UserRole) (token, jti string, expiresAt time.Time, err error) {
	now := biztime.NowUTC()
	expiresAt = now.Add(s.ttl)
	jti = uuid.New().String()

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, jti, expiresAt, nil
}

// Decode verifies a token string and returns its claims, distinguishing
// expired from invalid from semantically incomplete.
func (s *JWTService) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.UserID == 0 || claims.ID == "" || claims.ExpiresAt == nil || !claims.Role.IsValid() {
		return nil, ErrTokenIncomplete
	}

	return claims, nil
}
