package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shubham23mamgain/bringit/domain"
)

const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

// JWTConfig holds the signing material and lifetimes for issued tokens
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           domain.Clock
}

// NewJWTService creates a new JWT service. A nil clock means time.Now.
func NewJWTService(cfg JWTConfig, clock domain.Clock) domain.TokenService {
	if clock == nil {
		clock = time.Now
	}
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.AccessSecret
	}
	return &JWTServiceImpl{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        cfg.Issuer,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           clock,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	return uuid.NewString()
}

// IssueAccess implements domain.TokenService
func (j *JWTServiceImpl) IssueAccess(userID string) (string, error) {
	return j.issue(userID, audienceAccess, j.accessTTL, j.accessSecret)
}

// IssueRefresh implements domain.TokenService
func (j *JWTServiceImpl) IssueRefresh(userID string) (string, error) {
	return j.issue(userID, audienceRefresh, j.refreshTTL, j.refreshSecret)
}

// VerifyAccess implements domain.TokenService
func (j *JWTServiceImpl) VerifyAccess(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, audienceAccess, j.accessSecret)
}

// VerifyRefresh implements domain.TokenService
func (j *JWTServiceImpl) VerifyRefresh(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, audienceRefresh, j.refreshSecret)
}

func (j *JWTServiceImpl) issue(userID, audience string, ttl time.Duration, secret []byte) (string, error) {
	now := j.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    j.issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		// two logins in the same second must still yield distinct refresh tokens
		ID: j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// verify maps every parser failure onto malformed, bad signature or expired
func (j *JWTServiceImpl) verify(tokenString, audience string, secret []byte) (*domain.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(audience),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenMalformed
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		tokenClaims.IssuedAt = claims.IssuedAt.Time
	}
	return tokenClaims, nil
}
