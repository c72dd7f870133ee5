package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/securepass/securepass/internal/api/metrics"
	"github.com/securepass/securepass/internal/core/domain"
	"github.com/securepass/securepass/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	revoker     ports.TokenRevoker
	logger      zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, revoker ports.TokenRevoker, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, revoker: revoker, logger: logger}
}

// Signup creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Credential: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.AccountsRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, signupResponse{Name: account.Name, Email: account.Email})
}

// Signin authenticates an account and returns an access token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  signinResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, signinResponse{
		AccessToken: result.Token,
		ExpiresIn:   result.ExpiresInMillis,
	})
}

// Delete removes the caller's account and all its vault entries, then revokes
// the caller's outstanding tokens.
//
// @Summary      Delete the authenticated account
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/delete [delete]
func (h *AuthHandler) Delete(c echo.Context) error {
	accountID, err := callerID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.authService.DeleteAccount(ctx, accountID); err != nil {
		return err
	}
	metrics.AccountsDeletedTotal.Inc()

	// A failed revocation does not undo the deletion.
	if err := h.revoker.Revoke(ctx, accountID, domain.TokenLifetime); err != nil {
		h.logger.Warn().Err(err).Str("account_id", accountID).Msg("token revocation failed")
	}

	return c.NoContent(http.StatusNoContent)
}
