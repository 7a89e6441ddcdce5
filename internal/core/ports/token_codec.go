package ports

// TokenClaims is the identity information embedded in a signed token.
type TokenClaims struct {
	Subject string // the user's email
	UserID  int64
	Role    string
}

// TokenCodec issues and verifies signed, time-bounded bearer tokens.
// Verify fails with domain.ErrTokenExpired when the embedded expiry has
// passed and domain.ErrTokenInvalid on any signature or structure problem.
type TokenCodec interface {
	Issue(claims TokenClaims) (string, error)
	Verify(token string) (*TokenClaims, error)
}
