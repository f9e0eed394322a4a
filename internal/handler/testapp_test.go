package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kutuphane/locallibrary/internal/handler"
	"github.com/kutuphane/locallibrary/internal/middleware"
	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/repository"
	"github.com/kutuphane/locallibrary/internal/service"
	"github.com/kutuphane/locallibrary/internal/session"
	"github.com/kutuphane/locallibrary/internal/testutil"
	"github.com/kutuphane/locallibrary/pkg/logger"
)

// testApp wires the full application against an in-memory database,
// matching the wiring in cmd/server minus Redis and the audit trail.
type testApp struct {
	db      *testutil.TestDatabase
	handler http.Handler

	authorRepo   *repository.AuthorRepository
	genreRepo    *repository.GenreRepository
	bookRepo     *repository.BookRepository
	instanceRepo *repository.BookInstanceRepository
	userRepo     *repository.UserRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.Init(false)

	db := testutil.SetupTestDatabase(t)

	authorRepo := repository.NewAuthorRepository(db.DB)
	genreRepo := repository.NewGenreRepository(db.DB)
	bookRepo := repository.NewBookRepository(db.DB)
	instanceRepo := repository.NewBookInstanceRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)

	authorService := service.NewAuthorService(authorRepo, bookRepo, nil)
	genreService := service.NewGenreService(genreRepo, bookRepo, nil)
	bookService := service.NewBookService(bookRepo, authorRepo, genreRepo, instanceRepo, nil)
	instanceService := service.NewBookInstanceService(instanceRepo, bookRepo, nil)
	accountService := service.NewAccountService(userRepo, "test-secret-key")
	dashboardService := service.NewDashboardService(bookRepo, instanceRepo, authorRepo, genreRepo)

	sessions := session.NewManager()
	authorizer := middleware.NewAuthorizer(sessions)
	loginLimiter := middleware.NewLoginLimiter(nil, middleware.LoginLimiterConfig{})

	h := &handler.Handlers{
		Dashboard: handler.NewDashboardHandler(dashboardService, sessions),
		Authors:   handler.NewAuthorHandler(authorService, sessions),
		Books:     handler.NewBookHandler(bookService, sessions),
		Genres:    handler.NewGenreHandler(genreService, sessions),
		Instances: handler.NewBookInstanceHandler(instanceService, sessions),
		Users:     handler.NewUserHandler(accountService, sessions, loginLimiter),
	}

	router := gin.New()
	handler.SetupRoutes(router, h, authorizer, loginLimiter)

	return &testApp{
		db:           db,
		handler:      sessions.LoadAndSave(router),
		authorRepo:   authorRepo,
		genreRepo:    genreRepo,
		bookRepo:     bookRepo,
		instanceRepo: instanceRepo,
		userRepo:     userRepo,
	}
}

func (app *testApp) teardown(t *testing.T) {
	app.db.Teardown(t)
}

func (app *testApp) clean(t *testing.T) {
	testutil.CleanDatabase(t, app.db.DB)
}

// createUser persists a user fixture directly.
func (app *testApp) createUser(t *testing.T, username, email, password string, role models.Role) *models.User {
	t.Helper()

	user, err := testutil.CreateTestUser(username, email, password, role)
	require.NoError(t, err)
	require.NoError(t, app.db.DB.Create(user).Error)
	return user
}

// testClient is a cookie-carrying browser stand-in. Each client holds
// its own session.
type testClient struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (app *testApp) client() *testClient {
	return &testClient{
		app:     app,
		cookies: make(map[string]*http.Cookie),
	}
}

func (tc *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range tc.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	tc.app.handler.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(tc.cookies, cookie.Name)
			continue
		}
		tc.cookies[cookie.Name] = cookie
	}

	return w
}

func (tc *testClient) get(path string) *httptest.ResponseRecorder {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *testClient) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return tc.do(http.MethodPost, path, form)
}

// login performs the real login flow and fails the test if the
// credentials bounce back to the login page.
func (tc *testClient) login(t *testing.T, username, password string) {
	t.Helper()

	w := tc.postForm("/users/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"), "Login should land on the home page")
}
