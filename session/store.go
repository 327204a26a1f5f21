// Package session issues and checks administrator sessions.
//
// A session is an HS256 JWT whose jti is also stored in Redis for the
// lifetime of the token. A token is only accepted while its Redis key
// exists, so logout takes effect immediately.
package session

import (
	"context"
	"errors"
	"fmt"
	"folio/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidToken = errors.New("invalid or expired session")
	ErrNoSecret     = errors.New("session secret is required")
)

const (
	defaultTTL    = 24 * time.Hour
	defaultIssuer = "folio"
	keyPrefix     = "session:"
)

type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Claims are the custom JWT claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type Store struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewStore(rdb *redis.Client, cfg Config) (*Store, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	return &Store{
		rdb:    rdb,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

func key(jti string) string {
	return keyPrefix + jti
}

// Issue creates a session for admin and records it in Redis.
func (s *Store) Issue(ctx context.Context, admin models.Admin) (*models.Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	jti := uuid.NewString()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   admin.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: admin.Email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.rdb.Set(ctx, key(jti), admin.ID.String(), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &models.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC().Truncate(time.Second),
		User:        models.SessionUser{ID: admin.ID, Email: admin.Email},
	}, nil
}

// Lookup returns the session behind token, or ErrInvalidToken when the
// token is malformed, expired, signed with another key or revoked.
func (s *Store) Lookup(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	exists, err := s.rdb.Exists(ctx, key(claims.ID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return nil, ErrInvalidToken
	}

	adminID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &models.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt.Time.UTC(),
		User:        models.SessionUser{ID: adminID, Email: claims.Email},
	}, nil
}

// Revoke deletes the session. Revoking an unknown or already revoked
// session is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, key(claims.ID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *Store) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
