package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kutuphane/locallibrary/internal/middleware"
	"github.com/kutuphane/locallibrary/internal/service"
	"github.com/kutuphane/locallibrary/internal/session"
	"github.com/kutuphane/locallibrary/pkg/logger"
)

type UserHandler struct {
	accounts *service.AccountService
	sessions *session.Manager
	limiter  *middleware.LoginLimiter
}

func NewUserHandler(accounts *service.AccountService, sessions *session.Manager, limiter *middleware.LoginLimiter) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		sessions: sessions,
		limiter:  limiter,
	}
}

// redirectIfAuthenticated sends signed-in principals back home. Login,
// registration and reset pages are for anonymous visitors only.
func (h *UserHandler) redirectIfAuthenticated(c *gin.Context) bool {
	if h.sessions.IsAuthenticated(c.Request.Context()) {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return true
	}
	return false
}

// ownsProfile confirms the session principal is the owner of the page.
// Anyone else is redirected home without a notice.
func (h *UserHandler) ownsProfile(c *gin.Context) bool {
	ctx := c.Request.Context()
	if !h.sessions.IsAuthenticated(ctx) || h.sessions.UserID(ctx) != c.Param("id") {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return false
	}
	return true
}

// LoginGet renders the login form with any pending notices.
// GET /users/login
func (h *UserHandler) LoginGet(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Login",
		"notices": h.sessions.PopNotices(c.Request.Context()),
	})
}

// LoginPost checks the credentials and establishes the session.
// POST /users/login
func (h *UserHandler) LoginPost(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")
	ctx := c.Request.Context()

	user, err := h.accounts.Login(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.sessions.PushNotice(ctx, "Invalid username or password. Try again.")
			c.Redirect(http.StatusFound, "/users/login")
			return
		}
		renderServerError(c, err)
		return
	}

	if err := h.sessions.SignIn(ctx, user); err != nil {
		renderServerError(c, err)
		return
	}

	if h.limiter != nil {
		if err := h.limiter.Reset(c.ClientIP()); err != nil {
			logger.Log.Warn("Failed to reset login limiter", zap.Error(err))
		}
	}

	c.Redirect(http.StatusFound, "/")
}

// LogoutGet destroys the session and all of its state.
// GET /users/logout
func (h *UserHandler) LogoutGet(c *gin.Context) {
	if err := h.sessions.SignOut(c.Request.Context()); err != nil {
		renderServerError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// RegisterGet renders the empty registration form.
// GET /users/register
func (h *UserHandler) RegisterGet(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": "Create User",
	})
}

// RegisterPost validates the form and creates the account.
// POST /users/register
func (h *UserHandler) RegisterPost(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}

	in := service.RegisterInput{
		Username:        c.PostForm("username"),
		Fullname:        c.PostForm("fullname"),
		Email:           c.PostForm("email"),
		Role:            c.PostForm("role"),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password_confirm"),
	}

	user, v, err := h.accounts.Register(in)
	if err != nil {
		renderServerError(c, err)
		return
	}
	if v != nil {
		c.JSON(http.StatusOK, gin.H{
			"title": "Create User",
			"user": gin.H{
				"username": in.Username,
				"fullname": in.Fullname,
				"email":    in.Email,
				"role":     in.Role,
			},
			"errors": v.Errors,
		})
		return
	}

	logger.Log.Info("User registered via form",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	ctx := c.Request.Context()
	h.sessions.PushNotice(ctx, "Successfully registered. You can log in now!")
	c.Redirect(http.StatusFound, "/users/login")
}

// Profile renders the session owner's profile page.
// GET /users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	if !h.ownsProfile(c) {
		return
	}

	user, err := h.accounts.Profile(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": "User Profile",
		"user":  user,
	})
}

// UpdateGet renders the profile form pre-filled with the stored record.
// GET /users/:id/update
func (h *UserHandler) UpdateGet(c *gin.Context) {
	if !h.ownsProfile(c) {
		return
	}

	user, err := h.accounts.Profile(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":          "Update User",
		"user":           user,
		"is_update_form": true,
	})
}

// UpdatePost validates the form and replaces the stored record.
// POST /users/:id/update
func (h *UserHandler) UpdatePost(c *gin.Context) {
	if !h.ownsProfile(c) {
		return
	}

	in := service.ProfileUpdateInput{
		Username:        c.PostForm("username"),
		Fullname:        c.PostForm("fullname"),
		Email:           c.PostForm("email"),
		Role:            c.PostForm("role"),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password_confirm"),
	}

	user, v, err := h.accounts.UpdateProfile(c.Param("id"), in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}
	if v != nil {
		c.JSON(http.StatusOK, gin.H{
			"title": "Update User",
			"user": gin.H{
				"username": in.Username,
				"fullname": in.Fullname,
				"email":    in.Email,
				"role":     in.Role,
			},
			"errors":         v.Errors,
			"is_update_form": true,
		})
		return
	}

	// The session principal may have renamed themselves
	if err := h.sessions.SignIn(c.Request.Context(), user); err != nil {
		renderServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, user.URL())
}

// ResetGet renders the first step of the password reset flow.
// GET /users/reset
func (h *UserHandler) ResetGet(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":         "Reset Password",
		"is_first_step": true,
	})
}

// ResetPost handles step one: find the user by username+email. On a
// match the second-step form is rendered carrying a signed token
// identifying the user; the identifier itself never enters the URL.
// POST /users/reset
func (h *UserHandler) ResetPost(c *gin.Context) {
	if h.redirectIfAuthenticated(c) {
		return
	}

	username := c.PostForm("username")
	email := c.PostForm("email")

	user, token, v, err := h.accounts.ResetBegin(username, email)
	if err != nil {
		renderServerError(c, err)
		return
	}
	if v != nil {
		c.JSON(http.StatusOK, gin.H{
			"title":         "Reset Password",
			"is_first_step": true,
			"user": gin.H{
				"username": username,
				"email":    email,
			},
			"errors": v.Errors,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":          "Reset Password",
		"is_second_step": true,
		"user":           user,
		"reset_token":    token,
	})
}

// ResetFinalPost handles step two: re-validate the password pair and
// re-hash. The stored role is preserved; nothing in this path can
// change it.
// POST /users/resetfinal
func (h *UserHandler) ResetFinalPost(c *gin.Context) {
	token := c.PostForm("reset_token")
	password := c.PostForm("password")
	passwordConfirm := c.PostForm("password_confirm")

	_, v, err := h.accounts.ResetFinish(token, password, passwordConfirm)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Bad or expired token: back to step one
			c.JSON(http.StatusOK, gin.H{
				"title":         "Reset Password",
				"is_first_step": true,
				"errors": []gin.H{
					{"field": "reset_token", "message": "The reset request is no longer valid. Try again."},
				},
			})
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}
	if v != nil {
		c.JSON(http.StatusOK, gin.H{
			"title":          "Reset Password",
			"is_second_step": true,
			"reset_token":    token,
			"errors":         v.Errors,
		})
		return
	}

	ctx := c.Request.Context()
	h.sessions.PushNotice(ctx, "You have successfully changed your password. You can log in now!")
	c.Redirect(http.StatusFound, "/users/login")
}

// Warning renders the static page unauthorized principals land on.
// GET /users/stop
func (h *UserHandler) Warning(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":   "Sorry!",
		"notices": h.sessions.PopNotices(c.Request.Context()),
	})
}
