package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ekincan/iptv-gateway/internal/config"
	"github.com/ekincan/iptv-gateway/internal/identity"
	"github.com/ekincan/iptv-gateway/internal/model"
	"github.com/ekincan/iptv-gateway/internal/repository"
)

// AuthHandler bundles dependencies for the modern API's auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Identity *identity.Service
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, ident *identity.Service) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Identity: ident}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
type loginReq struct {
	Login    string `json:"login"` // email or username
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResult struct {
	Type    string     `json:"type"`
	Token   string     `json:"token,omitempty"`
	Expires *time.Time `json:"expires,omitempty"`
	User    *userPart  `json:"user,omitempty"`
}

// Register creates a USER account.  Accounts start unverified; the login
// endpoint reports the pending verification step until that changes.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return failure(c, http.StatusBadRequest, "email, username and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Username, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return failure(c, http.StatusConflict, "email or username already exists")
		}
		return failure(c, http.StatusInternalServerError, "create user failed")
	}

	return success(c, http.StatusCreated, userPart{
		ID: uid, Email: req.Email, Username: req.Username, Role: model.RoleUser,
	})
}

// Login verifies credentials and returns either an access token or the
// step-up the account still has to complete.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return failure(c, http.StatusBadRequest, "invalid body")
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		return failure(c, http.StatusBadRequest, "login and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Identity.Login(ctx, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return failure(c, http.StatusUnauthorized, "invalid credentials")
		}
		return failure(c, http.StatusInternalServerError, "login failed")
	}

	out := loginResult{Type: res.Type}
	if res.Type == identity.LoginAccessToken {
		exp := res.Token.Exp
		out.Token = res.Token.Token
		out.Expires = &exp
		out.User = &userPart{
			ID: res.User.ID, Email: res.User.Email,
			Username: res.User.Username, Role: res.User.Role,
		}
	}
	return success(c, http.StatusOK, out)
}

// Me returns the authenticated account's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := userIDFromContext(c)
	if !ok {
		return failure(c, http.StatusUnauthorized, "invalid token subject")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Identity.UserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return failure(c, http.StatusNotFound, "user not found")
		}
		return failure(c, http.StatusInternalServerError, "load user failed")
	}
	return success(c, http.StatusOK, userPart{
		ID: u.ID, Email: u.Email, Username: u.Username, Role: u.Role,
	})
}

// userIDFromContext reads the subject claim JWTAuth stored.  JWT numeric
// claims decode as float64.
func userIDFromContext(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	default:
		return 0, false
	}
}
