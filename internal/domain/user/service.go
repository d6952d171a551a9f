package user

import (
	"context"
	"errors"
	"time"

	"github.com/Scalium-Tech/aligned/internal/domain/activity"
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"github.com/Scalium-Tech/aligned/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	CompleteOnboarding(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo   Repository
	ledger activity.Service
	jwt    *auth.JWTService
	logger *logger.Logger
}

func NewService(repo Repository, ledger activity.Service, jwt *auth.JWTService, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		ledger: ledger,
		jwt:    jwt,
		logger: log,
	}
}

// Register creates a new account. Local per-user state is cleared here and
// only here: a fresh account must not inherit derived state from a
// previously migrated user with the same identifier.
func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if existing, err := s.repo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hash),
		Timezone:     timezone,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.ledger.ClearAll(user.ID.String())

	s.logger.Info("account created", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) CompleteOnboarding(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.OnboardedAt == nil {
		now := time.Now().UTC()
		user.OnboardedAt = &now
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}
