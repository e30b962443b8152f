package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/errs"
	"github.com/fintrackhq/backend/internal/models"
	"github.com/fintrackhq/backend/internal/store"
	"github.com/fintrackhq/backend/internal/token"
	"github.com/fintrackhq/backend/pkg/logger"
)

type authUserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type authService struct {
	users       authUserStore
	tokens      *token.Manager
	cache       cache.Client
	botTokenTTL time.Duration
}

func NewAuthService(users authUserStore, tokens *token.Manager, c cache.Client, botTokenTTL time.Duration) *authService {
	return &authService{
		users:       users,
		tokens:      tokens,
		cache:       c,
		botTokenTTL: botTokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return dto.AuthResponse{}, errs.NewAlreadyExistsError("email already registered")
		}
		return dto.AuthResponse{}, errs.NewDatabaseError("create user", err)
	}

	jwt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	logger.FromContext(ctx).Info("user registered", "uid", user.ID)
	return dto.AuthResponse{Token: jwt, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dto.AuthResponse{}, errs.NewUnauthorizedError("invalid email or password")
		}
		return dto.AuthResponse{}, errs.NewDatabaseError("get user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return dto.AuthResponse{}, errs.NewUnauthorizedError("invalid email or password")
	}

	jwt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{Token: jwt, User: user}, nil
}

// BotToken mints a one-time linking token for the authenticated user. The
// token lives only in the cache; if the cache is down the exchange will
// simply fail and the user retries.
func (s *authService) BotToken(ctx context.Context, uid string) (dto.BotTokenResponse, error) {
	t := uuid.NewString()
	s.cache.Set(ctx, cache.AuthTokenKey(t), []byte(uid), s.botTokenTTL)
	return dto.BotTokenResponse{
		Token:     t,
		ExpiresIn: int(s.botTokenTTL.Seconds()),
	}, nil
}

// BotExchange trades a one-time token for a session JWT and consumes it.
func (s *authService) BotExchange(ctx context.Context, req dto.BotExchangeRequest) (dto.AuthResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.AuthResponse{}, err
	}

	key := cache.AuthTokenKey(req.Token)
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return dto.AuthResponse{}, errs.NewUnauthorizedError("invalid or expired token")
	}
	s.cache.Delete(ctx, key)

	jwt, err := s.tokens.Issue(string(raw))
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{Token: jwt}, nil
}
