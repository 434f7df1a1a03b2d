package usecases

import (
	"context"
	"errors"

	"orbit/internal/domain/user"
	apperrors "orbit/internal/shared/errors"
	"orbit/internal/shared/logger"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(hash, password string) bool
}

// TokenIssuer mints an access token for an authenticated user.
type TokenIssuer interface {
	Issue(userID uint, role string) (string, error)
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string `json:"token"`
	User  struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

type LoginUseCase struct {
	userRepo user.UserRepository
	verifier PasswordVerifier
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(userRepo user.UserRepository, verifier PasswordVerifier, tokens TokenIssuer, log logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		verifier: verifier,
		tokens:   tokens,
		logger:   log,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	u, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same response as a bad password so the endpoint does not
			// reveal which emails exist.
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		uc.logger.Errorw("failed to load user by email", "error", err)
		return nil, apperrors.NewInternalError("failed to authenticate")
	}

	if !u.IsActive() {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}
	if !uc.verifier.Verify(u.PasswordHash(), cmd.Password) {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := uc.tokens.Issue(u.ID(), string(u.Role()))
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", u.ID(), "error", err)
		return nil, apperrors.NewInternalError("failed to issue token")
	}

	uc.logger.Infow("user logged in", "user_id", u.ID())

	result := &LoginResult{Token: token}
	result.User.ID = u.ID()
	result.User.Name = u.Name()
	result.User.Email = u.Email()
	result.User.Role = string(u.Role())
	return result, nil
}
