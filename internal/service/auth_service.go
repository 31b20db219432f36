package service

import (
	"context"
	"errors"
	"log"
	"time"

	"Lee_Channel/internal/model"
	"Lee_Channel/internal/pkg"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s *model.Session) error
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// SessionCache is optional (nil disables it). Cache faults degrade to the
// session table, they never decide an authentication outcome.
type SessionCache interface {
	Put(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	users      UserRepo
	sessions   SessionRepo
	cache      SessionCache
	sessionTTL time.Duration
}

func NewAuthService(users UserRepo, sessions SessionRepo, cache SessionCache, sessionTTL time.Duration) *AuthService {
	if sessionTTL == 0 {
		sessionTTL = pkg.DefaultSessionTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		cache:      cache,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and mints a new session. Unknown user and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Session, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, nil, pkg.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, pkg.ErrInvalidCredentials
	}

	token, issuedAt, expiresAt, err := pkg.GenerateToken(user.ID, s.sessionTTL)
	if err != nil {
		return nil, nil, err
	}
	sess := &model.Session{
		Token:     token,
		UserID:    user.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, token, user.ID, s.sessionTTL); err != nil {
			log.Printf("session cache put err: %v", err)
		}
	}
	return sess, user, nil
}

// Resolve turns a presented token back into a trusted user. Read-only:
// a forged, expired or logged-out token yields ErrUnauthenticated and
// nothing else happens.
func (s *AuthService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, pkg.ErrUnauthenticated
	}
	claims, err := pkg.ParseToken(token)
	if err != nil {
		return nil, pkg.ErrUnauthenticated
	}

	// Signature and expiry are fine; now confirm the session still exists
	// server-side. Logout removes the row, so a stolen-but-revoked token
	// dies here.
	userID, err := s.lookupSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, pkg.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) lookupSession(ctx context.Context, token string) (uuid.UUID, error) {
	if s.cache != nil {
		if id, err := s.cache.Get(ctx, token); err == nil {
			return id, nil
		}
	}

	sess, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return uuid.Nil, pkg.ErrUnauthenticated
		}
		return uuid.Nil, err
	}
	now := time.Now()
	if sess.Expired(now) {
		return uuid.Nil, pkg.ErrUnauthenticated
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, token, sess.UserID, sess.ExpiresAt.Sub(now)); err != nil {
			log.Printf("session cache warm err: %v", err)
		}
	}
	return sess.UserID, nil
}

// Logout invalidates the presented session; repeating it is harmless.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteByToken(ctx, token); err != nil && !errors.Is(err, pkg.ErrNotFound) {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, token); err != nil {
			log.Printf("session cache delete err: %v", err)
		}
	}
	return nil
}
