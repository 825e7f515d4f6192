package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

type documentReader interface {
	Snapshot() models.Document
}

// LoginResult carries an issued session and its bearer token.
type LoginResult struct {
	Token   string         `json:"token"`
	Session models.Session `json:"session"`
}

// AuthService validates credentials against the document and manages the
// in-memory session registry.
type AuthService struct {
	store    documentReader
	sessions *SessionManager
	logger   *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(store documentReader, sessions *SessionManager, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = NewSessionManager()
	}
	return &AuthService{store: store, sessions: sessions, logger: logger}
}

// Sessions exposes the registry for middleware.
func (s *AuthService) Sessions() *SessionManager {
	return s.sessions
}

// AuthenticateAdministrator checks the master password and issues an
// administrator session.
func (s *AuthService) AuthenticateAdministrator(password string) (*LoginResult, error) {
	doc := s.store.Snapshot()
	if !document.VerifyPassword(doc.Settings.AccessPassword, password) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "master password is incorrect")
	}

	session := models.Session{
		Role: models.RoleAdministrator,
		Name: models.AdministratorName,
		ID:   models.AdministratorID,
	}
	token, err := s.sessions.Issue(session)
	if err != nil {
		return nil, err
	}
	s.logger.Info("administrator logged in")
	return &LoginResult{Token: token, Session: session}, nil
}

// AuthenticateStaff looks up a staff member whose name matches
// case-insensitively and whose password verifies. No matching credential
// pair yields NOT_FOUND; a matching pair on a locked account yields
// ACCOUNT_LOCKED, which the UI must present differently.
func (s *AuthService) AuthenticateStaff(name, password string) (*LoginResult, error) {
	doc := s.store.Snapshot()

	var member *models.StaffMember
	for i := range doc.Staff {
		m := doc.Staff[i]
		if strings.EqualFold(m.Name, name) && document.VerifyPassword(m.Password, password) {
			member = &m
			break
		}
	}
	if member == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "staff member or password not found")
	}
	if !member.Active {
		return nil, appErrors.Clone(appErrors.ErrAccountLocked, "access blocked by the administrator")
	}

	session := models.Session{
		Role: models.RoleStaff,
		Name: member.Name,
		ID:   member.ID,
	}
	token, err := s.sessions.Issue(session)
	if err != nil {
		return nil, err
	}
	s.logger.Info("staff member logged in", zap.String("staff_id", member.ID))
	return &LoginResult{Token: token, Session: session}, nil
}

// Logout discards the session bound to the token.
func (s *AuthService) Logout(token string) {
	s.sessions.Revoke(token)
}
