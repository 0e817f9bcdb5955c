package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/core/services"
	"github.com/spendtrail/spendtrail_app/internal/dto"
	"github.com/spendtrail/spendtrail_app/internal/middleware"
	"github.com/spendtrail/spendtrail_app/internal/utils"
	"github.com/spendtrail/spendtrail_app/pkg/config"
)

const oauthStateCookie = "oauth_state"

// authHandler handles login and Google sign-in.
type authHandler struct {
	userService portssvc.UserSvc
	googleOAuth *services.GoogleOAuthSvc
	cfg         *config.Config
}

func newAuthHandler(us portssvc.UserSvc, oauth *services.GoogleOAuthSvc, cfg *config.Config) *authHandler {
	return &authHandler{userService: us, googleOAuth: oauth, cfg: cfg}
}

// login godoc
// @Summary Log in or register
// @Description Authenticates with email/password; unknown credentials create the account.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: dto.BindingErrorMessage(err)})
		return
	}

	user, created, err := h.userService.LoginOrRegister(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Incorrect password. Please try again."})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		default:
			logger.Error("Login failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Login failed. Please try again."})
		}
		return
	}

	token, err := utils.GenerateJWT(user.UserID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to generate token"})
		return
	}

	resp := dto.LoginResponse{Success: true, Token: token, UID: user.UserID}
	status := http.StatusOK
	if created {
		resp.Message = "Account created and login successful!"
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// googleLogin godoc
// @Summary Start Google sign-in
// @Description Redirects to Google's consent page with a CSRF state cookie.
// @Tags auth
// @Success 307
// @Router /auth/google/login [get]
func (h *authHandler) googleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.googleOAuth.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to start Google sign-in"})
		return
	}

	c.SetCookie(oauthStateCookie, state, 300, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.GetLoginURL(c.Request.Context(), state))
}

// googleCallback godoc
// @Summary Complete Google sign-in
// @Description Exchanges the authorization code, validates the ID token and returns a JWT.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *authHandler) googleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Authorization code is required"})
		return
	}

	oauthToken, err := h.googleOAuth.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Warn("Failed to exchange authorization code", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid or expired authorization code"})
		return
	}

	email, err := h.googleOAuth.ValidateIDToken(c.Request.Context(), oauthToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid Google ID token"})
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), email)
	if err != nil {
		logger.Error("Failed to resolve Google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Login failed. Please try again."})
		return
	}

	token, err := utils.GenerateJWT(user.UserID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Token: token, UID: user.UserID})
}
