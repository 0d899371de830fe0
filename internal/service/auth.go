package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/photo-gallery/internal/apperr"
	"github.com/iliyamo/photo-gallery/internal/logging"
	"github.com/iliyamo/photo-gallery/internal/model"
	q "github.com/iliyamo/photo-gallery/internal/queue"
	"github.com/iliyamo/photo-gallery/internal/repository"
	"github.com/iliyamo/photo-gallery/internal/utils"
)

// AdminCredential is the single configured admin identity. PasswordHash is a
// bcrypt hash; configuration hashes a plaintext password at startup.
type AdminCredential struct {
	Username     string
	PasswordHash string
}

// AuthService owns registration and the three login flows.
type AuthService struct {
	users  repository.UserStore
	hasher *utils.PasswordHasher
	tokens *utils.TokenService
	admin  AdminCredential
	events Publisher
	log    logging.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UserStore, hasher *utils.PasswordHasher, tokens *utils.TokenService,
	admin AdminCredential, events Publisher, log logging.Logger) *AuthService {
	if events == nil {
		events = NopPublisher{}
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		admin:  admin,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Register creates an account and returns a session token for it.
//
// The hash is computed between the duplicate pre-check and the insert, so
// no store lock is held while bcrypt runs; the insert re-checks uniqueness
// atomically.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (utils.AccessToken, model.User, error) {
	if blank(name) || blank(email) || blank(password) {
		return utils.AccessToken{}, model.User{}, apperr.Validation("All fields are required")
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return utils.AccessToken{}, model.User{}, apperr.Conflict("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return utils.AccessToken{}, model.User{}, apperr.Internal("Registration failed", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return utils.AccessToken{}, model.User{}, apperr.Validation("Password is too long")
		}
		return utils.AccessToken{}, model.User{}, apperr.Internal("Registration failed", err)
	}

	u, err := s.users.InsertUser(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return utils.AccessToken{}, model.User{}, apperr.Conflict("Email already registered")
		}
		return utils.AccessToken{}, model.User{}, apperr.Internal("Registration failed", err)
	}

	tok, err := s.tokens.IssueUserToken(u.ID, u.Email)
	if err != nil {
		return utils.AccessToken{}, model.User{}, apperr.Internal("Registration failed", err)
	}

	s.publish(ctx, q.Event{Type: q.EventUserRegistered, UserID: u.ID, Email: u.Email})
	s.log.Info(ctx, "user registered", "user_id", u.ID)
	return tok, u, nil
}

// Login checks an email/password pair. Unknown email and wrong password
// produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (utils.AccessToken, error) {
	if blank(email) || blank(password) {
		return utils.AccessToken{}, apperr.Validation("Email and password are required")
	}
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.AccessToken{}, apperr.Unauthorized("Invalid credentials")
		}
		return utils.AccessToken{}, apperr.Internal("Login failed", err)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return utils.AccessToken{}, apperr.Unauthorized("Invalid credentials")
	}
	tok, err := s.tokens.IssueUserToken(u.ID, u.Email)
	if err != nil {
		return utils.AccessToken{}, apperr.Internal("Login failed", err)
	}
	return tok, nil
}

// AdminLogin checks the configured admin pair and issues a 1h admin token.
// The password is always run through bcrypt so a wrong username costs the
// same time as a wrong password.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (utils.AccessToken, error) {
	if blank(username) || blank(password) {
		return utils.AccessToken{}, apperr.Validation("Username and password are required")
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := s.hasher.Verify(s.admin.PasswordHash, password)
	if !userOK || !passOK {
		s.log.Warn(ctx, "admin login rejected")
		return utils.AccessToken{}, apperr.Unauthorized("Invalid credentials")
	}
	tok, err := s.tokens.IssueAdminToken(s.admin.Username)
	if err != nil {
		return utils.AccessToken{}, apperr.Internal("Internal server error", err)
	}
	return tok, nil
}

// Profile returns the public view of the caller's account.
func (s *AuthService) Profile(ctx context.Context, userID int64) (model.Profile, error) {
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Profile{}, apperr.NotFound("User not found")
		}
		return model.Profile{}, apperr.Internal("Failed to load profile", err)
	}
	return u.Profile(), nil
}

func (s *AuthService) publish(ctx context.Context, ev q.Event) {
	ev.OccurredAt = s.now().UTC().Format(time.RFC3339)
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn(ctx, "event publish failed", "type", ev.Type, "error", err)
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ResolveAdminCredential prefers a configured bcrypt hash and otherwise
// hashes the plaintext once, so the running process never keeps the
// password around.
func ResolveAdminCredential(username, password, passwordHash string, hasher *utils.PasswordHasher) (AdminCredential, error) {
	if passwordHash != "" {
		if !utils.IsPasswordHash(passwordHash) {
			return AdminCredential{}, errors.New("ADMIN_PASSWORD_HASH is not a bcrypt hash")
		}
		return AdminCredential{Username: username, PasswordHash: passwordHash}, nil
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return AdminCredential{}, err
	}
	return AdminCredential{Username: username, PasswordHash: hash}, nil
}
