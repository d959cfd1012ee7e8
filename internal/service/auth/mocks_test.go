package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/modulearn/backend/internal/adapter/postgres/user"
	"github.com/modulearn/backend/internal/auth"
	"github.com/modulearn/backend/internal/domain"
)

// Function-field mocks for the consumer interfaces declared in service.go.

type userRepoMock struct {
	UpsertFunc  func(ctx context.Context, p user.UpsertParams) (*domain.User, error)
	GetByIDFunc func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *userRepoMock) Upsert(ctx context.Context, p user.UpsertParams) (*domain.User, error) {
	return m.UpsertFunc(ctx, p)
}

func (m *userRepoMock) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserFunc func(ctx context.Context, userID int64) error
	DeleteExpiredFunc   func(ctx context.Context) (int, error)
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) error {
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	return m.RevokeByIDFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID int64) error {
	return m.RevokeAllByUserFunc(ctx, userID)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context) (int, error) {
	return m.DeleteExpiredFunc(ctx)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

type codeVerifierMock struct {
	VerifyCodeFunc func(ctx context.Context, code string) (*auth.Identity, error)
}

func (m *codeVerifierMock) VerifyCode(ctx context.Context, code string) (*auth.Identity, error) {
	return m.VerifyCodeFunc(ctx, code)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID int64, role string) (string, error)
	ValidateAccessTokenFunc  func(token string) (int64, string, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID int64, role string) (string, error) {
	return m.GenerateAccessTokenFunc(userID, role)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (int64, string, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	return m.GenerateRefreshTokenFunc()
}
