// Package session wraps the scs session manager with the small surface
// the handlers need: the signed-in principal and the one-shot notice
// queue flashed on the next rendered page.
package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/kutuphane/locallibrary/internal/models"
)

const (
	keyUserID   = "userID"
	keyUsername = "username"
	keyUserRole = "userRole"
	keyNotices  = "notices"
)

func init() {
	// The notice queue is stored as a slice inside the session map.
	gob.Register([]string{})
}

type Manager struct {
	*scs.SessionManager
}

func NewManager() *Manager {
	sm := scs.New()
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.HttpOnly = true
	sm.IdleTimeout = 12 * time.Hour
	sm.Lifetime = 24 * time.Hour

	return &Manager{SessionManager: sm}
}

// SignIn records the user as the session principal. The session token
// is renewed to prevent fixation.
func (m *Manager) SignIn(ctx context.Context, user *models.User) error {
	if err := m.RenewToken(ctx); err != nil {
		return err
	}
	m.Put(ctx, keyUserID, user.ID)
	m.Put(ctx, keyUsername, user.Username)
	m.Put(ctx, keyUserRole, int(user.Role))
	return nil
}

// SignOut destroys the session and all of its state.
func (m *Manager) SignOut(ctx context.Context) error {
	return m.Destroy(ctx)
}

// IsAuthenticated reports whether a principal is signed in.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.Exists(ctx, keyUserID)
}

// UserID returns the signed-in user's id, or "" when anonymous.
func (m *Manager) UserID(ctx context.Context) string {
	return m.GetString(ctx, keyUserID)
}

// Username returns the signed-in user's name, or "" when anonymous.
func (m *Manager) Username(ctx context.Context) string {
	return m.GetString(ctx, keyUsername)
}

// Role returns the signed-in user's role. ok is false when anonymous.
func (m *Manager) Role(ctx context.Context) (models.Role, bool) {
	if !m.Exists(ctx, keyUserRole) {
		return 0, false
	}
	return models.Role(m.GetInt(ctx, keyUserRole)), true
}

// PushNotice queues a message for the next rendered page.
func (m *Manager) PushNotice(ctx context.Context, message string) {
	notices, _ := m.Get(ctx, keyNotices).([]string)
	notices = append(notices, message)
	m.Put(ctx, keyNotices, notices)
}

// PopNotices drains the queued notices. Reading consumes them.
func (m *Manager) PopNotices(ctx context.Context) []string {
	notices, _ := m.Pop(ctx, keyNotices).([]string)
	return notices
}
