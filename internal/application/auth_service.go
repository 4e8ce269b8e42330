package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mcnijman/go-emailaddress"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

// PasswordHasher computes and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Compare(ctx context.Context, hash, plain string) (bool, error)
}

type AuthService struct {
	Users        repo.UserRepository
	Sessions     repo.SessionStore
	Hasher       PasswordHasher
	Validator    *validation.Validator
	Logger       *logrus.Logger
	StoreTimeout time.Duration

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repo.UserRepository, sessions repo.SessionStore, hasher PasswordHasher, logger *logrus.Logger, storeTimeout time.Duration) *AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthService{
		Users:        users,
		Sessions:     sessions,
		Hasher:       hasher,
		Validator:    validation.New(),
		Logger:       logger,
		StoreTimeout: storeTimeout,
	}
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Password2 string
}

// NormalizeEmail trims and lower-cases an address so lookups and the
// uniqueness constraint ignore case.
func NormalizeEmail(s string) string {
	s = strings.TrimSpace(s)
	if addr, err := emailaddress.Parse(s); err == nil {
		return strings.ToLower(addr.String())
	}
	return strings.ToLower(s)
}

func (s *AuthService) validateRegistration(in *RegisterInput) error {
	return asValidationError(s.Validator.Check().
		Field("name", in.Name, nameRules...).
		Field("email", in.Email, emailRules...).
		Field("password", in.Password, passwordRules...).
		Field("password2", in.Password2, confirmRules...).
		Equal("password2", in.Password2, in.Password, msgPasswordsMismatch).
		Err())
}

// Register creates a user and returns its id. The email pre-check is a fast
// path; the store's uniqueness constraint decides concurrent attempts.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if err := s.validateRegistration(&in); err != nil {
		return "", err
	}

	sctx, cancel := s.storeCtx(ctx)
	_, err := s.Users.GetByEmail(sctx, in.Email)
	cancel()
	switch {
	case err == nil:
		return "", ErrDuplicateEmail
	case !errors.Is(err, repo.ErrNotFound):
		return "", storeErr(err)
	}

	hash, err := s.Hasher.Hash(ctx, in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{Name: in.Name, Email: in.Email, PasswordHash: hash}
	sctx, cancel = s.storeCtx(ctx)
	defer cancel()
	if err := s.Users.Create(sctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return "", ErrDuplicateEmail
		}
		return "", storeErr(err)
	}

	metrics.Registrations.Add(1)
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return u.ID, nil
}

// Verify checks an email/password pair. Unknown emails and wrong passwords
// both yield ErrInvalidCredentials after a comparable amount of hashing work.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*entity.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	sctx, cancel := s.storeCtx(ctx)
	u, err := s.Users.GetByEmail(sctx, email)
	cancel()
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.burnComparison(ctx, password)
			return nil, ErrInvalidCredentials
		}
		return nil, storeErr(err)
	}

	ok, err := s.Hasher.Compare(ctx, u.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login verifies credentials and issues a new session for every call.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, repo.Session, error) {
	u, err := s.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.LoginFailures.Add(1)
		}
		return nil, repo.Session{}, err
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	sess, err := s.Sessions.Create(sctx, u.ID)
	if err != nil {
		return nil, repo.Session{}, storeErr(err)
	}

	metrics.Logins.Add(1)
	helpers.LogInfo(s.Logger, "user logged in", logrus.Fields{"user_id": u.ID})
	return u, sess, nil
}

// Resolve maps a session token to its user. Missing, expired and orphaned
// sessions resolve to a nil user without an error.
func (s *AuthService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	uid, ok, err := s.Sessions.Resolve(sctx, token)
	if err != nil {
		return nil, storeErr(err)
	}
	if !ok {
		return nil, nil
	}
	u, err := s.Users.GetByID(sctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return u, nil
}

// Logout invalidates token; an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.Sessions.Destroy(sctx, token); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *AuthService) burnComparison(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash(context.Background(), "not-a-real-password-0A")
		if err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash != "" {
		_, _ = s.Hasher.Compare(ctx, s.dummyHash, password)
	}
}

// storeCtx bounds a store call and detaches it from client cancellation.
func (s *AuthService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return boundedStoreCtx(ctx, s.StoreTimeout)
}

func boundedStoreCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
