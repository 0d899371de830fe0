package model

// PrincipalKind separates the two trust domains a token can belong to.
type PrincipalKind string

const (
	KindUser  PrincipalKind = "user"
	KindAdmin PrincipalKind = "admin"
)

// RoleAdmin is the only role admin-only routes accept.
const RoleAdmin = "admin"

// Principal is the identity resolved from a verified token. User principals
// carry UserID and Email; admin principals carry Username and Role.
type Principal struct {
	Kind     PrincipalKind
	UserID   int64
	Email    string
	Username string
	Role     string
}

func (p Principal) IsAdmin() bool {
	return p.Kind == KindAdmin && p.Role == RoleAdmin
}
