package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/colegioeccos/requesthub/internal/auth"
	"github.com/colegioeccos/requesthub/internal/config"
	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/events"
	"github.com/colegioeccos/requesthub/internal/repository"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// IdentityService resolves authenticated principals to roles and manages
// role assignments. Every resolution failure fails closed: the caller is
// treated as unauthenticated, never granted a default role.
type IdentityService struct {
	principals     repository.PrincipalRepository
	tokens         *auth.TokenManager
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	ssoSecret      []byte
	allowedDomain  string
	rootAdminEmail string
}

// IdentityDependencies bundles collaborators for the identity service.
type IdentityDependencies struct {
	PrincipalRepo repository.PrincipalRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.Config, deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		principals:     deps.PrincipalRepo,
		tokens:         auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		ssoSecret:      []byte(cfg.Auth.SSOSharedSecret),
		allowedDomain:  strings.ToLower(cfg.Auth.AllowedEmailDomain),
		rootAdminEmail: strings.ToLower(cfg.Auth.RootAdminEmail),
	}
}

// TokenManager exposes the session token manager for middleware wiring.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// SignIn exchanges an identity-provider assertion for a portal session.
// Foreign-domain emails are rejected before any record is created; unknown
// principals are provisioned with the default role; blocked principals are
// denied without exposing any content.
func (s *IdentityService) SignIn(ctx context.Context, assertion string) (*domain.Principal, string, time.Time, error) {
	claims, err := auth.ParseAssertion(s.ssoSecret, assertion)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid sign-in assertion")
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if !strings.HasSuffix(email, "@"+s.allowedDomain) {
		return nil, "", time.Time{}, apperrors.NewForbidden(
			fmt.Sprintf("access denied: only @%s accounts are allowed", s.allowedDomain))
	}

	principal, err := s.principals.GetByID(ctx, claims.Subject)
	if err == pgx.ErrNoRows {
		principal, err = s.provision(ctx, claims.Subject, email, claims.Name, claims.Picture)
	}
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if principal.Role == domain.RoleBlocked {
		return nil, "", time.Time{}, apperrors.NewForbidden("account blocked")
	}

	go s.refreshLastLogin(principal.ID)

	token, expiresAt, err := s.tokens.GenerateToken(principal)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return principal, token, expiresAt, nil
}

func (s *IdentityService) provision(ctx context.Context, id, email, name, picture string) (*domain.Principal, error) {
	role := domain.RoleUser
	if email == s.rootAdminEmail {
		role = domain.RoleAdmin
	}
	principal := &domain.Principal{
		ID:          id,
		Email:       email,
		DisplayName: name,
		PhotoURL:    picture,
		Role:        role,
		LastLogin:   time.Now(),
	}
	if err := s.principals.Create(ctx, principal); err != nil {
		return nil, err
	}
	s.logger.Info("provisioned principal",
		zap.String("principal_id", principal.ID),
		zap.String("role", string(principal.Role)))
	return principal, nil
}

func (s *IdentityService) refreshLastLogin(principalID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.principals.UpdateLastLogin(ctx, principalID, time.Now()); err != nil {
		s.logger.Warn("failed to refresh last login",
			zap.String("principal_id", principalID), zap.Error(err))
	}
}

// ListPrincipals returns every member, for the admin user-management view.
func (s *IdentityService) ListPrincipals(ctx context.Context) ([]domain.Principal, error) {
	return s.principals.List(ctx)
}

// UpdateRole changes a member's role. The root support account's role is
// immutable regardless of the caller or the new value.
func (s *IdentityService) UpdateRole(ctx context.Context, actor *domain.Principal, principalID string, role domain.Role) error {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	if !role.Valid() {
		return apperrors.NewValidationError("invalid role", map[string]any{"field": "role"})
	}

	target, err := s.principals.GetByID(ctx, principalID)
	if err != nil {
		return err
	}
	if strings.EqualFold(target.Email, s.rootAdminEmail) {
		return apperrors.NewInvariantViolation(
			fmt.Sprintf("the role of %s cannot be changed", s.rootAdminEmail))
	}
	if target.Role == role {
		return nil
	}

	if err := s.principals.UpdateRole(ctx, principalID, role); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventRoleChanged,
		ActorID: actor.ID,
		Payload: events.RoleChangedPayload{
			PrincipalID: principalID,
			OldRole:     target.Role,
			NewRole:     role,
		},
	})
	return nil
}

func (s *IdentityService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
