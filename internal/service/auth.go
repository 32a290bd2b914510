package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Skotchmaster/atlas_derslik/internal/models"
	"github.com/Skotchmaster/atlas_derslik/internal/mykafka"
	"github.com/Skotchmaster/atlas_derslik/internal/repo"
	"github.com/Skotchmaster/atlas_derslik/internal/transport"
	pkg_hash "github.com/Skotchmaster/atlas_derslik/pkg/hash"
	"github.com/Skotchmaster/atlas_derslik/pkg/logging"
	"github.com/Skotchmaster/atlas_derslik/pkg/tokens"
	"github.com/google/uuid"
)

type AccountStore interface {
	FindActiveByIdentifier(ctx context.Context, identifier string) (*models.Account, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindRoleProfile(ctx context.Context, accountID uuid.UUID, role string) (*models.RoleProfile, error)
	CreateAccount(ctx context.Context, acc *models.Account, profile *models.RoleProfile) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

type AuthService struct {
	Store  AccountStore
	Tokens *tokens.Signer
	Events EventPublisher
	Cost   int

	// compared against when no account matches so that unknown identifiers
	// cost the same bcrypt work as known ones
	dummyHash string
}

func NewAuthService(store AccountStore, signer *tokens.Signer, cost int) *AuthService {
	s := &AuthService{Store: store, Tokens: signer, Cost: cost}
	if h, err := pkg_hash.HashPassword("atlas-derslik-timing-parity", cost); err == nil {
		s.dummyHash = h
	}
	return s
}

func (s *AuthService) Authenticate(ctx context.Context, identifier, secret string) (*transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		l.Warn("login_failed", "status", 400, "reason", "missing identifier or secret")
		return nil, fmt.Errorf("identifier and secret are required: %w", ErrValidation)
	}
	l = l.With("identifier", identifier)

	acc, err := s.Store.FindActiveByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.burnCompare(secret)
			l.Warn("login_failed", "status", 401, "reason", "no active account")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "step", "lookup", "error", err)
		return nil, fmt.Errorf("lookup account: %w", errors.Join(ErrInternal, err))
	}

	if !pkg_hash.CheckPassword(acc.PasswordHash, secret) {
		l.Warn("login_failed", "status", 401, "reason", "secret mismatch", "account_id", acc.ID)
		return nil, ErrInvalidCredentials
	}

	res, err := s.issue(acc)
	if err != nil {
		l.Error("login_failed", "status", 500, "step", "issue", "error", err)
		return nil, err
	}

	s.publish(ctx, l, mykafka.EventAccountLoggedIn, acc)
	l.Info("login_successful", "account_id", acc.ID, "role", acc.Role)
	return res, nil
}

func (s *AuthService) burnCompare(secret string) {
	if s.dummyHash != "" {
		_ = pkg_hash.CheckPassword(s.dummyHash, secret)
	}
}

func (s *AuthService) issue(acc *models.Account) (*transport.LoginResult, error) {
	token, claims, err := s.Tokens.Issue(acc.ID.String(), acc.Identifier, acc.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", errors.Join(ErrInternal, err))
	}
	return &transport.LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
		Account:   transport.SummaryOf(acc),
	}, nil
}

// VerifyClaim checks signature and expiry only. It never consults the store,
// so deactivation or role changes apply once the token is reissued.
func (s *AuthService) VerifyClaim(ctx context.Context, token string) (*tokens.AccessClaims, error) {
	l := logging.FromContext(ctx).With("svc", "auth.verify")

	if token == "" {
		return nil, fmt.Errorf("empty token: %w", ErrInvalidToken)
	}

	claims, err := s.Tokens.Parse(token)
	if err != nil {
		reason := "malformed or bad signature"
		if tokens.IsExpired(err) {
			reason = "expired"
		}
		l.Debug("claim_rejected", "reason", reason, "error", err)
		return nil, fmt.Errorf("%s: %w", reason, ErrInvalidToken)
	}
	return claims, nil
}

func (s *AuthService) CurrentIdentity(ctx context.Context, token string) (*transport.AccountProfile, error) {
	l := logging.FromContext(ctx).With("svc", "auth.me")

	claims, err := s.VerifyClaim(ctx, token)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		l.Warn("me_failed", "status", 401, "reason", "subject is not an account id")
		return nil, ErrInvalidCredentials
	}
	l = l.With("account_id", id)

	acc, err := s.Store.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("me_failed", "status", 401, "reason", "account missing or inactive")
			return nil, ErrInvalidCredentials
		}
		l.Error("me_failed", "status", 500, "step", "lookup", "error", err)
		return nil, fmt.Errorf("lookup account: %w", errors.Join(ErrInternal, err))
	}

	profile, err := s.Store.FindRoleProfile(ctx, acc.ID, acc.Role)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		l.Error("me_failed", "status", 500, "step", "role_profile", "error", err)
		return nil, fmt.Errorf("lookup role profile: %w", errors.Join(ErrInternal, err))
	}

	return transport.ProfileOf(acc, profile), nil
}

// Logout has nothing to revoke server-side; it only logs whether the caller
// still held a valid claim.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	if token == "" {
		l.Info("logout", "with_token", false)
		return nil
	}
	if claims, err := s.Tokens.Parse(token); err == nil {
		l.Info("logout", "with_token", true, "account_id", claims.Subject)
		return nil
	}
	l.Info("logout", "with_token", true, "token_valid", false)
	return nil
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	acc, profile, err := buildAccount(req)
	if err != nil {
		l.Warn("register_failed", "status", 400, "error", err)
		return nil, err
	}
	l = l.With("identifier", acc.Identifier, "role", acc.Role)

	pwHash, err := pkg_hash.HashPassword(req.Secret, s.Cost)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the secret", "error", err)
		return nil, fmt.Errorf("hash secret: %w", errors.Join(ErrInternal, err))
	}
	acc.PasswordHash = pwHash

	if err := s.Store.CreateAccount(ctx, acc, profile); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warn("register_failed", "status", 409, "reason", "identifier exists")
			return nil, ErrConflict
		}
		l.Error("register_failed", "status", 500, "step", "create", "error", err)
		return nil, fmt.Errorf("create account: %w", errors.Join(ErrInternal, err))
	}

	res, err := s.issue(acc)
	if err != nil {
		l.Error("register_failed", "status", 500, "step", "issue", "error", err)
		return nil, err
	}

	s.publish(ctx, l, mykafka.EventAccountRegistered, acc)
	l.Info("register_successful", "account_id", acc.ID)
	return res, nil
}

func buildAccount(req transport.RegisterRequest) (*models.Account, *models.RoleProfile, error) {
	identifier := repo.NormalizeIdentifier(req.Identifier)
	role := strings.ToLower(strings.TrimSpace(req.Role))

	if identifier == "" || req.Secret == "" || role == "" {
		return nil, nil, fmt.Errorf("identifier, secret and role are required: %w", ErrValidation)
	}
	if len(req.Secret) > pkg_hash.MaxPasswordBytes {
		return nil, nil, fmt.Errorf("secret longer than %d bytes: %w", pkg_hash.MaxPasswordBytes, ErrValidation)
	}
	if req.HourlyRate < 0 {
		return nil, nil, fmt.Errorf("hourly rate must not be negative: %w", ErrValidation)
	}

	acc := &models.Account{
		Identifier: identifier,
		Role:       role,
		FullName:   strings.TrimSpace(req.FullName),
		Active:     true,
	}

	switch role {
	case models.RoleStudent:
		return acc, &models.RoleProfile{Student: &models.StudentProfile{
			GradeLevel: strings.TrimSpace(req.GradeLevel),
			School:     strings.TrimSpace(req.School),
			ParentName: strings.TrimSpace(req.ParentName),
		}}, nil
	case models.RoleTeacher:
		subjects, err := transport.JoinSubjects(req.Subjects)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", err, ErrValidation)
		}
		return acc, &models.RoleProfile{Teacher: &models.TeacherProfile{
			Subjects:      subjects,
			Qualification: strings.TrimSpace(req.Qualification),
			Bio:           strings.TrimSpace(req.Bio),
			HourlyRate:    req.HourlyRate,
		}}, nil
	default:
		// admin accounts are seeded, never self-registered
		return nil, nil, fmt.Errorf("role %q cannot self-register: %w", role, ErrValidation)
	}
}

func (s *AuthService) Deactivate(ctx context.Context, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "auth.deactivate", "account_id", id)

	if id == uuid.Nil {
		return fmt.Errorf("account id is required: %w", ErrValidation)
	}

	if err := s.Store.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("deactivate_failed", "status", 404)
			return ErrNotFound
		}
		l.Error("deactivate_failed", "status", 500, "error", err)
		return fmt.Errorf("deactivate: %w", errors.Join(ErrInternal, err))
	}

	s.publish(ctx, l, mykafka.EventAccountDeactivated, &models.Account{ID: id})
	l.Info("account_deactivated")
	return nil
}

func (s *AuthService) publish(ctx context.Context, l *slog.Logger, eventType string, acc *models.Account) {
	if s.Events == nil {
		return
	}
	event := mykafka.AccountEvent{
		Type:       eventType,
		AccountID:  acc.ID.String(),
		Identifier: acc.Identifier,
		Role:       acc.Role,
		At:         time.Now().UTC(),
	}
	if err := s.Events.PublishEvent(ctx, event.AccountID, event); err != nil {
		l.Error("kafka_publish_error", "event", eventType, "error", err)
	}
}
