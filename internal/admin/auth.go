package admin

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for an unknown user or a wrong password.
var ErrBadCredentials = errors.New("invalid username or password")

// Claims is the JWT body issued to admin API clients.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticator checks the configured admin credentials and issues tokens.
type Authenticator struct {
	username string
	hash     []byte
	secret   []byte
	ttl      time.Duration
}

// NewAuthenticator accepts password either as a bcrypt hash or as plain text,
// which is hashed here so that only the hash is kept in memory.
func NewAuthenticator(username, password, secret string, ttl time.Duration) (*Authenticator, error) {
	if username == "" || password == "" {
		return nil, errors.New("admin username and password must be configured")
	}
	if secret == "" {
		return nil, errors.New("web secret must be configured")
	}
	hash := []byte(password)
	if !isBcryptHash(password) {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrap(err, "hash admin password")
		}
	}
	return &Authenticator{username: username, hash: hash, secret: []byte(secret), ttl: ttl}, nil
}

func isBcryptHash(s string) bool {
	if _, err := bcrypt.Cost([]byte(s)); err != nil {
		return false
	}
	return strings.HasPrefix(s, "$2")
}

// Check verifies a login attempt.
func (a *Authenticator) Check(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if !userOK || passErr != nil {
		return ErrBadCredentials
	}
	return nil
}

// Secret is the HMAC key used to sign and verify tokens.
func (a *Authenticator) Secret() []byte {
	return a.secret
}

// IssueToken signs an HS256 token for username.
func (a *Authenticator) IssueToken(username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(a.ttl)
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return token, exp, nil
}

// ParseToken validates token and returns its claims.
func (a *Authenticator) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
