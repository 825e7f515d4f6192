package service

import (
	"crypto/rand"
	"encoding/base64"
	"sync"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// SessionManager keeps live sessions in process memory, keyed by an opaque
// bearer token. Sessions have no expiry: they end on logout or when the
// process exits. Locking a staff account does not revoke a session that is
// already here; the lock applies to the next authentication attempt.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewSessionManager constructs an empty registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]models.Session)}
}

// Issue registers a session and returns its bearer token.
func (m *SessionManager) Issue(session models.Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}
	m.mu.Lock()
	m.sessions[token] = session
	m.mu.Unlock()
	return token, nil
}

// Resolve returns the session bound to the token.
func (m *SessionManager) Resolve(token string) (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	return session, ok
}

// Revoke discards the session bound to the token. Unknown tokens are a no-op.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
