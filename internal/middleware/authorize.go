package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/session"
)

// Operation is what a request wants to do to a catalog entity.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// routeRule pairs a path pattern with the operation it requires. Rules
// are evaluated in order and the first match wins, so the create rule
// must come before the bare-detail rule or the literal segment "create"
// would be taken for an identifier.
type routeRule struct {
	pattern *regexp.Regexp
	// operation required by the rule; empty means the verb is taken
	// from the second capture group
	operation Operation
}

var routeRules = []routeRule{
	{regexp.MustCompile(`^/catalog/(author|book|bookinstance|genre)/[^/]+/(delete|update)$`), ""},
	{regexp.MustCompile(`^/catalog/(author|book|bookinstance|genre)/create$`), OpCreate},
	{regexp.MustCompile(`^/catalog/(author|book|bookinstance|genre)/[^/]+$`), OpRead},
}

// RequiredOperation resolves the permission a path needs. ok is false
// for paths the gate does not guard (lists, home, user routes).
func RequiredOperation(path string) (op Operation, ok bool) {
	for _, rule := range routeRules {
		m := rule.pattern.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		if rule.operation != "" {
			return rule.operation, true
		}
		return Operation(m[2]), true
	}
	return "", false
}

// Authorizer decides whether the session principal may perform the
// operation a guarded path requires.
type Authorizer struct {
	sessions *session.Manager
	roles    map[models.Role][]Operation
}

func NewAuthorizer(sessions *session.Manager) *Authorizer {
	return &Authorizer{
		sessions: sessions,
		roles:    defaultRolePermissions(),
	}
}

// defaultRolePermissions builds the fixed role table. The map is
// constructed once per Authorizer and never mutated afterwards.
func defaultRolePermissions() map[models.Role][]Operation {
	return map[models.Role][]Operation{
		models.RoleUser:   {OpRead},
		models.RoleEditor: {OpRead, OpCreate, OpUpdate},
		models.RoleAdmin:  {OpRead, OpCreate, OpUpdate, OpDelete},
	}
}

// Allowed reports whether role may perform op. Unknown roles have no
// permissions at all.
func (a *Authorizer) Allowed(role models.Role, op Operation) bool {
	for _, permitted := range a.roles[role] {
		if permitted == op {
			return true
		}
	}
	return false
}

// Gate returns the middleware guarding catalog entity routes.
// Unauthenticated requests bounce to the login page, authenticated but
// unauthorized ones to the warning page, each with a one-shot notice.
func (a *Authorizer) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		op, guarded := RequiredOperation(c.Request.URL.Path)
		if !guarded {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		if !a.sessions.IsAuthenticated(ctx) {
			a.sessions.PushNotice(ctx, "You need to login first!")
			c.Redirect(http.StatusFound, "/users/login")
			c.Abort()
			return
		}

		role, _ := a.sessions.Role(ctx)
		if !a.Allowed(role, op) {
			a.sessions.PushNotice(ctx, "You're not authorized to access this page!")
			c.Redirect(http.StatusFound, "/users/stop")
			c.Abort()
			return
		}

		c.Next()
	}
}
