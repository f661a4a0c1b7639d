// Package auth keeps a signed local session token that identifies the player
// across runs.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Issuer    = "budgethero"
	tokenFile = "session.jwt"
	keyFile   = "auth.key"
	keyBytes  = 32
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrInvalidSession = errors.New("session token is invalid")
)

// Identity is the signed-in player.
type Identity struct {
	UserID    string
	Anonymous bool
	IssuedAt  time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Anonymous bool `json:"anon"`
}

// Local signs HS256 session tokens and keeps them under dir.
type Local struct {
	dir    string
	secret []byte
	now    func() time.Time
}

// NewLocal uses secret when given, otherwise a key file created on first use.
func NewLocal(dir, secret string) (*Local, error) {
	if dir == "" {
		return nil, fmt.Errorf("auth dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create auth dir: %w", err)
	}
	l := &Local{dir: dir, now: time.Now}
	if s := strings.TrimSpace(secret); s != "" {
		l.secret = []byte(s)
		return l, nil
	}
	key, err := loadOrCreateKey(filepath.Join(dir, keyFile))
	if err != nil {
		return nil, err
	}
	l.secret = key
	return l, nil
}

func loadOrCreateKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		key, derr := hex.DecodeString(strings.TrimSpace(string(raw)))
		if derr != nil || len(key) < keyBytes {
			return nil, fmt.Errorf("auth key %s is corrupt", path)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read auth key: %w", err)
	}
	key := make([]byte, keyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate auth key: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("write auth key: %w", err)
	}
	return key, nil
}

func (l *Local) tokenPath() string { return filepath.Join(l.dir, tokenFile) }

// CurrentIdentity returns the stored identity, ErrNoSession when none exists.
func (l *Local) CurrentIdentity() (Identity, error) {
	raw, err := os.ReadFile(l.tokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return Identity{}, ErrNoSession
	}
	if err != nil {
		return Identity{}, fmt.Errorf("read session: %w", err)
	}
	return l.Verify(strings.TrimSpace(string(raw)))
}

// Verify parses a token signed by this authenticator.
func (l *Local) Verify(token string) (Identity, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return l.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(l.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Identity{}, fmt.Errorf("%w: subject is not a uuid", ErrInvalidSession)
	}
	id := Identity{UserID: claims.Subject, Anonymous: claims.Anonymous}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return id, nil
}

// SignInAnonymously mints a fresh player id and stores its token.
func (l *Local) SignInAnonymously() (Identity, error) {
	now := l.now().UTC().Truncate(time.Second)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   Issuer,
			Subject:  uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.NewString(),
		},
		Anonymous: true,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(l.secret)
	if err != nil {
		return Identity{}, fmt.Errorf("sign session: %w", err)
	}
	if err := os.WriteFile(l.tokenPath(), []byte(signed), 0o600); err != nil {
		return Identity{}, fmt.Errorf("write session: %w", err)
	}
	return Identity{UserID: claims.Subject, Anonymous: true, IssuedAt: now}, nil
}

// Ensure returns the current identity, signing in anonymously when there is
// none or the stored token no longer verifies.
func (l *Local) Ensure() (Identity, error) {
	id, err := l.CurrentIdentity()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNoSession) && !errors.Is(err, ErrInvalidSession) {
		return Identity{}, err
	}
	return l.SignInAnonymously()
}

// SignOut removes the stored token.
func (l *Local) SignOut() error {
	err := os.Remove(l.tokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
