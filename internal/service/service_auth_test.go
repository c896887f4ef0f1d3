package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsky74/Anamneon/internal/config"
	"github.com/alexsky74/Anamneon/internal/crypto"
	"github.com/alexsky74/Anamneon/internal/logger"
	"github.com/alexsky74/Anamneon/internal/store"
	"github.com/alexsky74/Anamneon/models"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "anamneon",
		TokenDuration: time.Hour,
	}
}

func newTestAuthService(accounts store.AccountRepository, keys crypto.KeyStore) AuthService {
	hasher := crypto.NewPasswordHasher(crypto.SyncDeriver{})
	return NewAuthService(accounts, keys, hasher, testAuthConfig(), logger.Nop())
}

func TestAuthService_Register_AutoLogin(t *testing.T) {
	keys := crypto.NewKeyStore()
	accounts := &accountRepoMock{
		createAccount: func(_ context.Context, account models.Account) (models.Account, error) {
			require.NotEmpty(t, account.PasswordHash)
			require.NotEqual(t, "secret", account.PasswordHash)
			account.ID = 7
			return account, nil
		},
	}
	svc := newTestAuthService(accounts, keys)

	account, token, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret",
		Name:     "Ada",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)
	assert.NotEmpty(t, token.SignedString)

	material, ok := keys.Get(7)
	require.True(t, ok, "registration should open a session")
	assert.Equal(t, []byte("secret"), material)
}

func TestAuthService_Register_InvalidData(t *testing.T) {
	svc := newTestAuthService(&accountRepoMock{}, crypto.NewKeyStore())

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, _, err = svc.Register(context.Background(), models.RegisterRequest{Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	accounts := &accountRepoMock{
		createAccount: func(_ context.Context, _ models.Account) (models.Account, error) {
			return models.Account{}, store.ErrEmailAlreadyExists
		},
	}
	keys := crypto.NewKeyStore()
	svc := newTestAuthService(accounts, keys)

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret",
	})

	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)

	_, ok := keys.Get(0)
	assert.False(t, ok, "failed registration must not cache a key")
}

func TestAuthService_Login(t *testing.T) {
	hasher := crypto.NewPasswordHasher(crypto.SyncDeriver{})
	hash, err := hasher.Hash(context.Background(), "secret")
	require.NoError(t, err)

	accounts := &accountRepoMock{
		findAccountByEmail: func(_ context.Context, email string) (models.Account, error) {
			if email != "ada@example.com" {
				return models.Account{}, store.ErrAccountNotFound
			}
			return models.Account{ID: 7, Email: email, PasswordHash: hash}, nil
		},
	}
	keys := crypto.NewKeyStore()
	svc := newTestAuthService(accounts, keys)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "ada@example.com", password: "secret"},
		{name: "unknown email", email: "nobody@example.com", password: "secret", wantErr: ErrInvalidCredentials},
		{name: "wrong password", email: "ada@example.com", password: "guess", wantErr: ErrInvalidCredentials},
		{name: "empty password", email: "ada@example.com", password: "", wantErr: ErrInvalidDataProvided},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys.ClearAll()

			account, token, loginErr := svc.Login(context.Background(), models.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, loginErr, tt.wantErr)
				_, ok := keys.Get(7)
				assert.False(t, ok, "failed login must not cache a key")
				return
			}

			require.NoError(t, loginErr)
			assert.Equal(t, int64(7), account.ID)
			assert.NotEmpty(t, token.SignedString)

			material, ok := keys.Get(7)
			require.True(t, ok)
			assert.Equal(t, []byte("secret"), material)
		})
	}
}

func TestAuthService_Logout_ClearsKey(t *testing.T) {
	keys := crypto.NewKeyStore()
	keys.Set(7, []byte("secret"))
	svc := newTestAuthService(&accountRepoMock{}, keys)

	svc.Logout(context.Background(), 7)

	_, ok := keys.Get(7)
	assert.False(t, ok)
}

func TestAuthService_ParseToken(t *testing.T) {
	keys := crypto.NewKeyStore()
	accounts := &accountRepoMock{
		createAccount: func(_ context.Context, account models.Account) (models.Account, error) {
			account.ID = 7
			return account, nil
		},
	}
	svc := newTestAuthService(accounts, keys)

	_, token, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)

	_, err = svc.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongIssuer(t *testing.T) {
	keys := crypto.NewKeyStore()
	accounts := &accountRepoMock{
		createAccount: func(_ context.Context, account models.Account) (models.Account, error) {
			account.ID = 7
			return account, nil
		},
	}
	svc := newTestAuthService(accounts, keys)

	_, token, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.TokenIssuer = "someone-else"
	other := NewAuthService(accounts, keys, crypto.NewPasswordHasher(crypto.SyncDeriver{}), otherCfg, logger.Nop())

	_, err = other.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Login_RepoFailure(t *testing.T) {
	dbErr := errors.New("disk is on fire")
	accounts := &accountRepoMock{
		findAccountByEmail: func(_ context.Context, _ string) (models.Account, error) {
			return models.Account{}, dbErr
		},
	}
	svc := newTestAuthService(accounts, crypto.NewKeyStore())

	_, _, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ada@example.com",
		Password: "secret",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
