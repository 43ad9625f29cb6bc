package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apitemplate/go-user-api/internal/domain/entity"
	"github.com/apitemplate/go-user-api/internal/interface/middleware"
	"github.com/apitemplate/go-user-api/internal/testutil"
	"github.com/apitemplate/go-user-api/pkg/helpers"
)

const authTestSecret = "0123456789abcdef0123456789abcdef"

func protectedRouter(repo *testutil.MemoryUserRepo, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.Protect(repo, jwt), func(c *gin.Context) {
		u := middleware.UserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "email": u.Email})
	})
	r.GET("/admin", middleware.Protect(repo, jwt), middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func seedUser(t *testing.T, repo *testutil.MemoryUserRepo, email string, admin bool) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Someone", Email: email, Password: "irrelevant-hash", IsAdmin: admin}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func authGet(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtect_ValidTokenAttachesUser(t *testing.T) {
	repo := testutil.NewMemoryUserRepo()
	jwt := helpers.NewJWTManager(authTestSecret, time.Hour)
	u := seedUser(t, repo, "alice@example.com", false)
	r := protectedRouter(repo, jwt)

	token, _, err := jwt.Generate(u.ID)
	require.NoError(t, err)

	w := authGet(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), u.ID)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestProtect_RejectionsAreUniform(t *testing.T) {
	repo := testutil.NewMemoryUserRepo()
	jwt := helpers.NewJWTManager(authTestSecret, time.Hour)
	u := seedUser(t, repo, "alice@example.com", false)
	r := protectedRouter(repo, jwt)

	forged, _, err := helpers.NewJWTManager("ffffffffffffffffffffffffffffffff", time.Hour).Generate(u.ID)
	require.NoError(t, err)
	expired, _, err := helpers.NewJWTManager(authTestSecret, -time.Minute).Generate(u.ID)
	require.NoError(t, err)
	unknownSubject, _, err := jwt.Generate("user-9999")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"bare token", "nonsense"},
		{"garbage bearer", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + forged},
		{"expired", "Bearer " + expired},
		{"deleted user", "Bearer " + unknownSubject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := authGet(r, "/me", tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Not authorized")
		})
	}
}

func TestProtect_BearerPrefixIsCaseInsensitive(t *testing.T) {
	repo := testutil.NewMemoryUserRepo()
	jwt := helpers.NewJWTManager(authTestSecret, time.Hour)
	u := seedUser(t, repo, "alice@example.com", false)
	r := protectedRouter(repo, jwt)

	token, _, err := jwt.Generate(u.ID)
	require.NoError(t, err)

	w := authGet(r, "/me", "bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_ForbidsNonAdmins(t *testing.T) {
	repo := testutil.NewMemoryUserRepo()
	jwt := helpers.NewJWTManager(authTestSecret, time.Hour)
	regular := seedUser(t, repo, "user@example.com", false)
	admin := seedUser(t, repo, "admin@example.com", true)
	r := protectedRouter(repo, jwt)

	regularToken, _, err := jwt.Generate(regular.ID)
	require.NoError(t, err)
	adminToken, _, err := jwt.Generate(admin.ID)
	require.NoError(t, err)

	w := authGet(r, "/admin", "Bearer "+regularToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized as admin")

	w = authGet(r, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_TokenCheckedBeforeRole(t *testing.T) {
	repo := testutil.NewMemoryUserRepo()
	jwt := helpers.NewJWTManager(authTestSecret, time.Hour)
	r := protectedRouter(repo, jwt)

	// Without a valid token the admin gate is never reached: 401, not 403.
	w := authGet(r, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Not authorized")
	assert.NotContains(t, w.Body.String(), "as admin")
}

// unavailableRepo fails every principal lookup the way a storage outage would.
type unavailableRepo struct{ *testutil.MemoryUserRepo }

func (r *unavailableRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, errors.New("server selection timeout")
}

func TestProtect_StorageOutageIsNotUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt := helpers.NewJWTManager(authTestSecret, time.Hour)
	r := gin.New()
	r.GET("/me", middleware.Protect(&unavailableRepo{}, jwt), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, _, err := jwt.Generate("user-0001")
	require.NoError(t, err)

	w := authGet(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "Not authorized")
}

func TestRequireAdmin_WithoutProtectRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orphan", middleware.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := authGet(r, "/orphan", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
