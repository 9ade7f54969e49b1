package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"userapi/internal/http-api/cache"
	"userapi/internal/http-api/dto"
	"userapi/internal/http-api/models"
	"userapi/internal/http-api/repository"
	"userapi/internal/middleware/auth"
	"userapi/internal/validation"
)

type UserService interface {
	GetUsers(ctx context.Context) ([]dto.UserResponse, error)
	CreateUser(ctx context.Context, user *models.User) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, user *models.User) (*dto.UserResponse, error)
}

// TokenIssuer signs the token stored on a newly created user.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

type userService struct {
	store  repository.Store
	rules  *validation.Rules
	tokens TokenIssuer
	cache  cache.UserListCache // optional
	logger *slog.Logger
	now    func() time.Time
}

// NewUserService wires the user service. listCache may be nil.
func NewUserService(
	store repository.Store,
	rules *validation.Rules,
	tokens TokenIssuer,
	listCache cache.UserListCache,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		store:  store,
		rules:  rules,
		tokens: tokens,
		cache:  listCache,
		logger: logger.With("component", "user_service"),
		now:    time.Now,
	}
}

// GetUsers returns every stored user in store order.
func (s *userService) GetUsers(ctx context.Context) ([]dto.UserResponse, error) {
	version, cacheable := s.cachedVersion(ctx)
	if cacheable {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "user list cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	users, err := s.store.Users().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	responses := dto.FromModelsToUserResponses(users)

	if cacheable {
		if err := s.cache.Set(ctx, version, responses); err != nil {
			s.logger.WarnContext(ctx, "user list cache write failed", "error", err)
		}
	}
	return responses, nil
}

// cachedVersion reads the list generation before the store is queried.
// The cache is bypassed when it is disabled or the version is unreadable.
func (s *userService) cachedVersion(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.Version(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "user list cache version read failed", "error", err)
		return 0, false
	}
	return version, true
}

// CreateUser validates, hashes, signs and stores a new user together with its phones.
// The input carries the plaintext password.
func (s *userService) CreateUser(ctx context.Context, user *models.User) (*dto.UserResponse, error) {
	if !s.rules.ValidEmail(user.Email) {
		return nil, invalidEmail()
	}

	// the password verdict is reported after the duplicate check
	validPassword := s.rules.ValidPassword(user.Password)
	var hashedPassword, token string
	if validPassword {
		var err error
		if hashedPassword, err = auth.HashPassword(user.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if token, err = s.tokens.Issue(user.Email); err != nil {
			return nil, fmt.Errorf("issue token: %w", err)
		}
	}

	var created *models.User
	err := s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		// the unique index on users.email backs this check up against concurrent creates
		exists, err := tx.Users().ExistsByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return emailAlreadyExists(user.Email)
		}

		if !validPassword {
			return invalidPassword()
		}

		today := s.today()
		lastLogin := today
		if user.LastLogin != nil {
			lastLogin = *user.LastLogin
		}

		active := true
		entity := &models.User{
			ID:        uuid.New().String(),
			Name:      user.Name,
			Email:     user.Email,
			Password:  hashedPassword,
			Created:   today,
			LastLogin: &lastLogin,
			Token:     token,
			IsActive:  &active,
		}

		if err := tx.Users().Create(ctx, entity); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return emailAlreadyExists(user.Email)
			}
			return fmt.Errorf("create user: %w", err)
		}
		if err := tx.Phones().ReplaceForUser(ctx, entity.ID, user.Phones); err != nil {
			return fmt.Errorf("create phones: %w", err)
		}

		created, err = tx.Users().FindByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	s.logger.InfoContext(ctx, "user created", "user_id", created.ID)
	return dto.FromModelToUserResponse(created), nil
}

// UpdateUser rewrites name, password and phones of the user selected by email.
// Formats are not re-validated here. id, created, lastLogin and token are
// carried over from the stored record; isActive is cleared and reads as false.
func (s *userService) UpdateUser(ctx context.Context, user *models.User) (*dto.UserResponse, error) {
	hashedPassword, err := auth.HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var updated *models.User
	err = s.store.WithinTransaction(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().FindByEmail(ctx, user.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return userNotFound(user.Email)
			}
			return fmt.Errorf("find user: %w", err)
		}

		modified := s.today()
		entity := &models.User{
			ID:        existing.ID,
			Name:      user.Name,
			Email:     existing.Email,
			Password:  hashedPassword,
			Created:   existing.Created,
			Modified:  &modified,
			LastLogin: existing.LastLogin,
			Token:     existing.Token,
		}

		if err := tx.Users().Update(ctx, entity); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return userNotFound(user.Email)
			}
			return fmt.Errorf("update user: %w", err)
		}
		if err := tx.Phones().ReplaceForUser(ctx, entity.ID, user.Phones); err != nil {
			return fmt.Errorf("replace phones: %w", err)
		}

		updated, err = tx.Users().FindByEmail(ctx, existing.Email)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	s.logger.InfoContext(ctx, "user updated", "user_id", updated.ID)
	return dto.FromModelToUserResponse(updated), nil
}

func (s *userService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "user list cache invalidation failed", "error", err)
	}
}

// today is the current calendar day at midnight UTC.
func (s *userService) today() time.Time {
	return dto.NewDate(s.now()).Time
}
