// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"shirupic/internal/middleware"
	"shirupic/internal/model"
	"shirupic/internal/service"
	"shirupic/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(s service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		service: s,
		logger:  logger,
	}
}

// GoogleLogin はGoogleのIDトークンを受け取り、自前のJWTとユーザー情報を返します
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GoogleLogin"))

	var req model.GoogleLoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationError(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	resp, err := h.service.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		logger.Warn("Login failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Login succeeded", slog.String("user_id", resp.User.ID))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// VerifyToken は Bearer トークンから復元したユーザー情報を返します。
// トークン自体の検証はミドルウェアが済ませています。
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "VerifyToken"))

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.VerifyResponse{User: user}, logger)
}
