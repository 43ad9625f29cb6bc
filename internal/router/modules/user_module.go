package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/apitemplate/go-user-api/config"
	"github.com/apitemplate/go-user-api/internal/domain/repository"
	handlers "github.com/apitemplate/go-user-api/internal/interface/http"
	"github.com/apitemplate/go-user-api/internal/interface/middleware"
	"github.com/apitemplate/go-user-api/internal/ratelimit"
	"github.com/apitemplate/go-user-api/pkg/helpers"
)

// UserModule wires user HTTP handlers, auth middleware, and rate limiters
// into routes.
// Public: POST /users, POST /users/login (strict limiter on top of the
// standard one; disjoint key prefixes keep their counters independent).
// Protected: GET/PUT /users/profile, POST /users/profile/avatar.
// Admin: GET /users, GET /users/search, GET /users/:id.
type UserModule struct {
	Handler *handlers.UserHandler
	Repo    repository.UserRepository
	JWT     *helpers.JWTManager
	Store   ratelimit.Store
	Cfg     *config.Config
}

func NewUserModule(h *handlers.UserHandler, repo repository.UserRepository, jwt *helpers.JWTManager, store ratelimit.Store, cfg *config.Config) *UserModule {
	return &UserModule{Handler: h, Repo: repo, JWT: jwt, Store: store, Cfg: cfg}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	keyFn := middleware.KeyByClientIP()

	strict := middleware.RateLimit(m.Store, middleware.Options{
		Max:     m.Cfg.AuthLimitMax,
		Window:  m.Cfg.AuthLimitWindow,
		Prefix:  "auth",
		Message: "Too many attempts from this IP, please try again later",
	}, keyFn, nil)

	rg.POST("/users", strict, m.Handler.Register)
	rg.POST("/users/login", strict, m.Handler.Login)

	protected := rg.Group("/users")
	protected.Use(middleware.Protect(m.Repo, m.JWT))
	{
		protected.GET("/profile", m.Handler.GetProfile)
		protected.PUT("/profile", m.Handler.UpdateProfile)
		protected.POST("/profile/avatar", m.Handler.UploadAvatar)
	}

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", m.Handler.ListUsers)
		admin.GET("/search", m.Handler.SearchUsers)
		admin.GET("/:id", m.Handler.GetUser)
	}
}
