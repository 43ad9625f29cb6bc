package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/apitemplate/go-user-api/internal/application"
	"github.com/apitemplate/go-user-api/internal/domain/entity"
	"github.com/apitemplate/go-user-api/internal/interface/middleware"
	"github.com/apitemplate/go-user-api/pkg/response"
	"github.com/apitemplate/go-user-api/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,pwd"`
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func userJSON(u *entity.User) gin.H {
	out := gin.H{
		"_id":       u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"isAdmin":   u.IsAdmin,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
	if u.AvatarURL != "" {
		out["avatarUrl"] = u.AvatarURL
	}
	return out
}

// Register POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			response.Fail(c, http.StatusBadRequest, "User already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Fail(c, http.StatusInternalServerError, "failed to register user", err.Error())
		return
	}
	response.OK(c, http.StatusCreated, gin.H{
		"_id":     u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"isAdmin": u.IsAdmin,
		"token":   token,
	}, "User registered successfully")
}

// Login POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, clientIP(c))
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrEmailNotFound):
			response.Fail(c, http.StatusUnauthorized, "No user found with this email", nil)
		case errors.Is(err, userapp.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, "Invalid credentials", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Fail(c, http.StatusInternalServerError, "failed to log in", err.Error())
		}
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"_id":     u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"isAdmin": u.IsAdmin,
		"token":   token,
	}, "User logged in successfully")
}

// GetProfile GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	u := middleware.UserFromContext(c)
	if u == nil {
		response.Fail(c, http.StatusUnauthorized, "Not authorized", nil)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": userJSON(u)}, "profile")
}

// UpdateProfile PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, userapp.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrEmailTaken):
			response.Fail(c, http.StatusBadRequest, "Email already in use", nil)
		case errors.Is(err, userapp.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "User not found", nil)
		default:
			h.Logger.WithError(err).Error("update profile failed")
			response.Fail(c, http.StatusInternalServerError, "failed to update profile", err.Error())
		}
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": gin.H{
		"_id":     u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"isAdmin": u.IsAdmin,
	}}, "Profile updated successfully")
}

// UploadAvatar POST /users/profile/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "could not read avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, userapp.ErrStorageDisabled) {
			response.Fail(c, http.StatusServiceUnavailable, "avatar uploads are not available", nil)
			return
		}
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Fail(c, http.StatusInternalServerError, "failed to upload avatar", err.Error())
		return
	}
	response.OK(c, http.StatusOK, gin.H{"avatarUrl": url}, "Avatar uploaded successfully")
}

// ListUsers GET /users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Fail(c, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userJSON(&users[i]))
	}
	response.OK(c, http.StatusOK, gin.H{"users": out}, "users")
}

// GetUser GET /users/:id (admin)
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, "User not found", nil)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": userJSON(u)}, "user")
}

// SearchUsers GET /users/search?q= (admin)
func (h *UserHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, 10)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Fail(c, http.StatusInternalServerError, "failed to search users", err.Error())
		return
	}
	response.OK(c, http.StatusOK, gin.H{"users": hits}, "search results")
}
