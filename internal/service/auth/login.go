package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modulearn/backend/internal/adapter/postgres/user"
	"github.com/modulearn/backend/internal/domain"
)

// Login exchanges a provider authorization code for a token pair.
// The verified identity is upserted into the directory: a first sign-in
// creates the user, every later sign-in reuses the same row keyed by the
// provider subject id. Directory write and refresh token storage happen in
// one transaction.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := input.Validate(s.cfg.IsProviderAllowed); err != nil {
		return nil, err
	}

	identity, err := s.verifier.VerifyCode(ctx, input.Code)
	if err != nil {
		return nil, fmt.Errorf("auth.Login verify code: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	provider := input.Provider

	var result *AuthResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.Upsert(txCtx, user.UpsertParams{
			OpenID:      identity.OpenID,
			Name:        identity.Name,
			Email:       &email,
			LoginMethod: &provider,
		})
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}

		result, err = s.issueTokens(txCtx, u)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	s.log.InfoContext(ctx, "user signed in",
		slog.Int64("user_id", result.User.ID),
		slog.String("provider", input.Provider))

	return result, nil
}

// Me returns the authenticated user's directory entry, or nil when the
// caller is anonymous or the entry no longer exists.
func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	if userID == 0 {
		return nil, nil
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth.Me: %w", err)
	}
	return u, nil
}
