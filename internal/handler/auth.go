package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/allergy-tracker/internal/apperror"
	"github.com/iliyamo/allergy-tracker/internal/auth"
	"github.com/iliyamo/allergy-tracker/internal/middleware"
	"github.com/iliyamo/allergy-tracker/internal/model"
	"github.com/iliyamo/allergy-tracker/internal/repository"
)

const dbTimeout = 5 * time.Second

// UserStore is the credential store the auth flow depends on. Lookups
// return repository.ErrNotFound when no row matches; Create returns
// repository.ErrEmailExists on a duplicate email.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// AuthHandler implements register/login/refresh/logout. Tokens are
// stateless signed JWTs: the access token travels in the response body,
// the refresh token only in the HTTP-only session cookie.
type AuthHandler struct {
	users   UserStore
	hasher  *auth.Hasher
	codec   *auth.Codec
	cookies *auth.SessionCookies
}

func NewAuthHandler(users UserStore, hasher *auth.Hasher, codec *auth.Codec, cookies *auth.SessionCookies) *AuthHandler {
	return &AuthHandler{users: users, hasher: hasher, codec: codec, cookies: cookies}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResp struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type authResp struct {
	AccessToken string   `json:"accessToken"`
	User        userResp `json:"user"`
}

type refreshResp struct {
	AccessToken string `json:"accessToken"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user and signs them in immediately: 201 with an
// access token and the session cookie set. A taken email is a 409 with
// no side effects.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.users.GetByEmail(ctx, email); err == nil {
		return apperror.ErrEmailAlreadyInUse
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return err
	}
	user := model.User{ID: uuid.New(), Email: email, PasswordHash: hash}
	if err := h.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost the race with a concurrent registration; the unique
			// index on email is the real guard.
			return apperror.ErrEmailAlreadyInUse
		}
		return err
	}

	return h.respondWithSession(c, http.StatusCreated, user)
}

// Login verifies credentials and issues a fresh token pair. An unknown
// email and a wrong password collapse to the same error so accounts
// cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrInvalidCredentials
		}
		return err
	}
	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		return apperror.ErrInvalidCredentials
	}

	return h.respondWithSession(c, http.StatusOK, user)
}

// Refresh exchanges the cookie-borne refresh token for a new access
// token and a rotated refresh token. Rotation on every use limits the
// blast radius of a leaked refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	token, ok := h.cookies.Read(c)
	if !ok || !h.codec.Validate(token) {
		return apperror.ErrInvalidRefreshToken
	}
	userID, err := h.codec.Subject(token)
	if err != nil {
		return apperror.ErrInvalidRefreshToken
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrUserNotFound
		}
		return err
	}

	access, err := h.codec.IssueAccess(user.ID)
	if err != nil {
		return err
	}
	refresh, err := h.codec.IssueRefresh(user.ID)
	if err != nil {
		return err
	}
	h.cookies.Set(c, refresh)
	return c.JSON(http.StatusOK, refreshResp{AccessToken: access})
}

// Logout clears the session cookie. Idempotent: tokens are stateless,
// so there is nothing server-side to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's public view.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.Principal(c)
	if !ok {
		return apperror.ErrUnauthenticated
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrUserNotFound
		}
		return err
	}
	return c.JSON(http.StatusOK, userResp{ID: user.ID, Email: user.Email})
}

// respondWithSession mints both tokens, sets the session cookie and
// writes the auth response. Nothing is written if minting fails, so a
// failed issuance leaves no partial session behind.
func (h *AuthHandler) respondWithSession(c echo.Context, status int, user model.User) error {
	access, err := h.codec.IssueAccess(user.ID)
	if err != nil {
		return err
	}
	refresh, err := h.codec.IssueRefresh(user.ID)
	if err != nil {
		return err
	}
	h.cookies.Set(c, refresh)
	return c.JSON(status, authResp{
		AccessToken: access,
		User:        userResp{ID: user.ID, Email: user.Email},
	})
}
