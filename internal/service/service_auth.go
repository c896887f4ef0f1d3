package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexsky74/Anamneon/internal/config"
	"github.com/alexsky74/Anamneon/internal/crypto"
	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/internal/utils"
	"github.com/alexsky74/Anamneon/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, session key
// caching, and JWT token lifecycle.
//
// The stored password hash is one-way and never usable as a decryption key.
// Decryption keys come from the raw password, which is cached in the key
// store only after it verified against the hash.
type authService struct {
	// accounts is the data-access layer used to create and look up accounts.
	accounts store.AccountRepository

	// keys caches the verified password per user for the session lifetime.
	keys crypto.KeyStore

	// hasher provides one-way password hashing and constant-time verification.
	hasher crypto.PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state besides the
// key store is read-only after construction.
func NewAuthService(accounts store.AccountRepository, keys crypto.KeyStore, hasher crypto.PasswordHasher, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		accounts:      accounts,
		keys:          keys,
		hasher:        hasher,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Register creates a new account and opens a session for it right away, so
// a fresh registration behaves exactly like a registration followed by a
// login.
//
// Returns the persisted account and a session token, or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, models.Token, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid registration data provided")
		return models.Account{}, models.Token{}, ErrInvalidDataProvided
	}

	hash, err := a.hasher.Hash(ctx, req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Account{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	account, err := a.accounts.CreateAccount(ctx, models.Account{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("account creation ended with error")
		return models.Account{}, models.Token{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	token, err := a.createToken(account.ID)
	if err != nil {
		return models.Account{}, models.Token{}, err
	}

	// auto-login: the password just set is verified by construction
	a.keys.Set(account.ID, []byte(req.Password))

	return account, token, nil
}

// Login authenticates an existing account.
//
// It looks up the account by email and verifies the password against the
// stored hash in constant time. On success the raw password is cached as
// session key material and a session token is issued.
//
// Both an unknown email and a wrong password yield ErrInvalidCredentials;
// the caller cannot tell which credential field mismatched.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Account, models.Token, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid login data provided")
		return models.Account{}, models.Token{}, ErrInvalidDataProvided
	}

	account, err := a.accounts.FindAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Warn().Str("email", req.Email).Msg("login attempt for unknown email")
			return models.Account{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", req.Email).Msg("account search by email failed")
		return models.Account{}, models.Token{}, fmt.Errorf("account search by email failed: %w", err)
	}

	ok, err := a.hasher.Verify(ctx, req.Password, account.PasswordHash)
	if err != nil {
		log.Err(err).Int64("user_id", account.ID).Msg("password verification failed")
		return models.Account{}, models.Token{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Warn().Int64("user_id", account.ID).Msg("wrong password")
		return models.Account{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.createToken(account.ID)
	if err != nil {
		return models.Account{}, models.Token{}, err
	}

	a.keys.Set(account.ID, []byte(req.Password))

	return account, token, nil
}

// Logout drops the cached session key. Ciphertext under the account becomes
// unreadable until the next login; pending tokens keep authenticating
// requests but every operation that needs the key fails with
// ErrNotAuthenticated.
func (a *authService) Logout(ctx context.Context, userID int64) {
	log := logger.FromContext(ctx)

	a.keys.Clear(userID)
	log.Info().Int64("user_id", userID).Msg("session key cleared")
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) createToken(userID int64) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}
