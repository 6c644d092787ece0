package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "budgetboard/internal/errors"
	"budgetboard/internal/logger"
	"budgetboard/internal/models"
	"budgetboard/internal/store"
)

// userService handles registration and login.
type userService struct {
	users   store.UserStore
	ledgers store.LedgerStore
}

// NewUserService creates a new UserServicer.
func NewUserService(users store.UserStore, ledgers store.LedgerStore) UserServicer {
	return &userService{users: users, ledgers: ledgers}
}

// Register creates the credential record and seeds the user's initial ledger:
// twelve months, the default category split, zero spend.
func (s *userService) Register(ctx context.Context, userID, password, email, fullName string) (*models.User, error) {
	if userID == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "userid and password are required")
	}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if exists {
		return nil, apperrors.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		UserID:   userID,
		Password: string(hashedPassword),
		Email:    email,
		FullName: fullName,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.ledgers.Insert(ctx, models.NewLedger(userID)); err != nil {
		// A stale ledger under this id means a previous registration was
		// torn; log and leave the existing document in place.
		if errors.Is(err, store.ErrDuplicateKey) {
			logger.Get().Warnw("ledger already exists for new user", "user_id", userID)
			return user, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// AttemptLogin verifies the credentials and returns the user record.
// An unknown userid and a wrong password are indistinguishable to the caller.
func (s *userService) AttemptLogin(ctx context.Context, userID, password string) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
