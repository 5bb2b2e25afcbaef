package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/brandbook/entries-api/internal/core/domain"
	"github.com/brandbook/entries-api/internal/core/ports"
)

const (
	DefaultBcryptCost = 8
	minPasswordLength = 5
)

// AuthOptions configures token issuance and hashing.
type AuthOptions struct {
	JWTSecret  string
	TokenTTL   time.Duration // 0 disables expiry
	BcryptCost int
	// Metrics defaults to a no-op recorder.
	Metrics ports.Metrics
}

// AuthService implements registration, login and bearer token verification.
type AuthService struct {
	repo      ports.UserRepository
	throttle  ports.LoginThrottle
	metrics   ports.Metrics
	log       zerolog.Logger
	secret    []byte
	tokenTTL  time.Duration
	cost      int
	dummyHash []byte
}

// NewAuthService wires the credential store. throttle may be nil.
func NewAuthService(repo ports.UserRepository, throttle ports.LoginThrottle, opts AuthOptions, log zerolog.Logger) (*AuthService, error) {
	if opts.JWTSecret == "" {
		return nil, errors.New("auth service: empty jwt secret")
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("auth service: bcrypt cost %d out of range", cost)
	}
	// compared against on unknown emails so both login failures cost the same
	dummy, err := bcrypt.GenerateFromPassword([]byte("brandbook-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	return &AuthService{
		repo:      repo,
		throttle:  throttle,
		metrics:   orNop(opts.Metrics),
		log:       log,
		secret:    []byte(opts.JWTSecret),
		tokenTTL:  opts.TokenTTL,
		cost:      cost,
		dummyHash: dummy,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || email == "" || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.metrics.AuthAttempt("register", "exists")
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		s.metrics.AuthAttempt("register", "error")
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Entries:      domain.Entries{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.metrics.AuthAttempt("register", "exists")
			return nil, err
		}
		s.metrics.AuthAttempt("register", "error")
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.IssueToken(created)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.metrics.AuthAttempt("register", "success")
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login returns ErrInvalidCredentials for both unknown emails and wrong
// passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			s.metrics.AuthAttempt("login", "throttled")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.metrics.AuthAttempt("login", "error")
		return nil, fmt.Errorf("login: %w", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil || user == nil {
		s.recordFailure(ctx, email)
		s.metrics.AuthAttempt("login", "invalid")
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.metrics.AuthAttempt("login", "success")
	return &ports.AuthResult{User: user, Token: token}, nil
}

// ChangePassword verifies current and stores a hash of next.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, current, next string) (*ports.AuthResult, error) {
	if len(next) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		s.metrics.AuthAttempt("change_password", "invalid")
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hashPassword(next)
	if err != nil {
		return nil, fmt.Errorf("change password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		s.metrics.AuthAttempt("change_password", "error")
		return nil, fmt.Errorf("change password: %w", err)
	}
	user.PasswordHash = hash

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("change password: %w", err)
	}

	s.metrics.AuthAttempt("change_password", "success")
	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return &ports.AuthResult{User: user, Token: token}, nil
}

// VerifyToken checks the signature and resolves the embedded user id. Every
// failure collapses into ErrUnauthorized except repository outages.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}
	return user, nil
}

// IssueToken signs a token embedding the user id.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  user.ID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenTTL))
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *AuthService) hashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
