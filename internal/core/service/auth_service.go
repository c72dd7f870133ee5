package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/securepass/securepass/internal/core/domain"
	"github.com/securepass/securepass/internal/core/ports"
)

const invalidLoginMessage = "invalid email or password"

// emailValidator is safe for concurrent use.
var emailValidator = validator.New()

// AuthService implements registration, login and account deletion.
type AuthService struct {
	accounts ports.AccountRepository
	hasher   ports.CredentialHasher
	issuer   ports.TokenIssuer
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	accounts ports.AccountRepository,
	hasher ports.CredentialHasher,
	issuer ports.TokenIssuer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		issuer:   issuer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account with a hashed credential and returns its
// public view.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.PublicAccount, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	exists, err := s.accounts.ExistsByEmail(ctx, in.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("register: email lookup failed")
		return nil, domain.StoreFailure(err)
	}
	if exists {
		return nil, domain.Conflict("email already in use")
	}

	hash, err := s.hasher.Hash(in.Credential)
	if err != nil {
		s.logger.Error().Err(err).Msg("register: hashing failed")
		return nil, domain.StoreFailure(err)
	}

	saved, err := s.accounts.Save(ctx, &domain.Account{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Email:          in.Email,
		CredentialHash: hash,
	})
	if err != nil {
		// A concurrent registration can win the race past ExistsByEmail.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("email already in use")
		}
		s.logger.Error().Err(err).Msg("register: save failed")
		return nil, domain.StoreFailure(err)
	}

	s.logger.Info().Str("account_id", saved.ID).Msg("account registered")
	return &domain.PublicAccount{Name: saved.Name, Email: saved.Email}, nil
}

// Login verifies the credential and issues a token whose subject is the
// account id. Unknown email and wrong credential yield the same error.
func (s *AuthService) Login(ctx context.Context, email, credential string) (*domain.LoginResult, error) {
	if email == "" || credential == "" {
		return nil, domain.Authentication(invalidLoginMessage)
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, domain.Authentication(invalidLoginMessage)
		}
		s.logger.Error().Err(err).Msg("login: account lookup failed")
		return nil, domain.StoreFailure(err)
	}

	if !s.hasher.Matches(credential, account.CredentialHash) {
		return nil, domain.Authentication(invalidLoginMessage)
	}

	issuedAt := s.now()
	token, err := s.issuer.Issue(account.ID, issuedAt, issuedAt.Add(domain.TokenLifetime), map[string]any{
		"role": domain.RoleUser,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", account.ID).Msg("login: token issue failed")
		return nil, domain.StoreFailure(err)
	}

	s.logger.Info().Str("account_id", account.ID).Msg("login succeeded")
	return &domain.LoginResult{
		Token:           token,
		ExpiresInMillis: domain.TokenLifetime.Milliseconds(),
	}, nil
}

// DeleteAccount removes the caller's account together with its vault entries.
func (s *AuthService) DeleteAccount(ctx context.Context, callerAccountID string) error {
	account, err := s.accounts.FindByID(ctx, callerAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return domain.Authentication("account not found")
		}
		s.logger.Error().Err(err).Str("account_id", callerAccountID).Msg("delete account: lookup failed")
		return domain.StoreFailure(err)
	}

	if err := s.accounts.Delete(ctx, account); err != nil {
		s.logger.Error().Err(err).Str("account_id", account.ID).Msg("delete account: delete failed")
		return domain.StoreFailure(err)
	}

	s.logger.Info().Str("account_id", account.ID).Msg("account deleted")
	return nil
}

func validateRegistration(in ports.RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Validation("name cannot be blank")
	}
	if strings.TrimSpace(in.Email) == "" {
		return domain.Validation("email cannot be blank")
	}
	if utf8.RuneCountInString(in.Email) > domain.MaxEmailLength {
		return domain.Validation("email must be less than 100 characters")
	}
	if emailValidator.Var(in.Email, "email") != nil {
		return domain.Validation("email must be valid")
	}
	if strings.TrimSpace(in.Credential) == "" {
		return domain.Validation("password cannot be blank")
	}
	if len(in.Credential) > domain.MaxCredentialBytes {
		return domain.Validation("password must be at most 72 bytes")
	}
	return nil
}
