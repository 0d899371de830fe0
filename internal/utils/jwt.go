package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

	"github.com/iliyamo/photo-gallery/internal/model"
)

// Issuers bind a token to its trust domain in addition to the secret.
const (
	UserIssuer  = "photo-gallery/user"
	AdminIssuer = "photo-gallery/admin"
)

// ErrInvalidToken covers every verification failure: malformed input, bad
// signature, wrong domain or expiry.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed JWT along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the payload of both token kinds. User tokens fill ID and Email,
// admin tokens fill Username and Role.
type Claims struct {
	ID       int64  `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenDomain parameterizes issuing and verification for one principal kind.
type TokenDomain struct {
	Kind   model.PrincipalKind
	Issuer string
	Secret []byte
	TTL    time.Duration
}

// TokenService issues and verifies tokens for the user and admin domains.
// The two domains use independent secrets, so a token from one never
// verifies in the other.
type TokenService struct {
	user  TokenDomain
	admin TokenDomain
	now   func() time.Time
}

// NewTokenService builds a service from the two secrets and lifetimes.
func NewTokenService(userSecret, adminSecret string, userTTL, adminTTL time.Duration) *TokenService {
	return &TokenService{
		user:  TokenDomain{Kind: model.KindUser, Issuer: UserIssuer, Secret: []byte(userSecret), TTL: userTTL},
		admin: TokenDomain{Kind: model.KindAdmin, Issuer: AdminIssuer, Secret: []byte(adminSecret), TTL: adminTTL},
		now:   time.Now,
	}
}

// WithClock replaces the time source for both issuing and verification.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// IssueUserToken signs {id, email} with the user secret.
func (s *TokenService) IssueUserToken(userID int64, email string) (AccessToken, error) {
	return s.issue(s.user, Claims{ID: userID, Email: email})
}

// IssueAdminToken signs {username, role: "admin"} with the admin secret.
func (s *TokenService) IssueAdminToken(username string) (AccessToken, error) {
	return s.issue(s.admin, Claims{Username: username, Role: model.RoleAdmin})
}

func (s *TokenService) issue(d TokenDomain, claims Claims) (AccessToken, error) {
	now := s.now().UTC()
	exp := now.Add(d.TTL)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    d.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.Secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign %s token: %w", d.Kind, err)
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyUser checks raw against the user domain and returns its principal.
func (s *TokenService) VerifyUser(raw string) (model.Principal, error) {
	c, err := s.Verify(raw, s.user)
	if err != nil {
		return model.Principal{}, err
	}
	if c.ID <= 0 {
		return model.Principal{}, ErrInvalidToken
	}
	return model.Principal{Kind: model.KindUser, UserID: c.ID, Email: c.Email}, nil
}

// VerifyAdmin checks raw against the admin domain. The role is returned as
// found; enforcing it is the caller's job so it can answer 403 instead of 401.
func (s *TokenService) VerifyAdmin(raw string) (model.Principal, error) {
	c, err := s.Verify(raw, s.admin)
	if err != nil {
		return model.Principal{}, err
	}
	if c.Username == "" {
		return model.Principal{}, ErrInvalidToken
	}
	return model.Principal{Kind: model.KindAdmin, Username: c.Username, Role: c.Role}, nil
}

// Verify parses raw with the domain's secret. Expiry is judged against the
// service clock at call time.
func (s *TokenService) Verify(raw string, d TokenDomain) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			// Reject anything that is not HMAC before handing out the key.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return d.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(d.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserDomain and AdminDomain expose the configured domains.
func (s *TokenService) UserDomain() TokenDomain  { return s.user }
func (s *TokenService) AdminDomain() TokenDomain { return s.admin }
