// internal/handlers/tts_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"shirupic/internal/ai"
	"shirupic/internal/middleware"
	"shirupic/internal/model"
	"shirupic/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type TTSHandler struct {
	aiClient ai.Client
	logger   *slog.Logger
}

func NewTTSHandler(aiClient ai.Client, logger *slog.Logger) *TTSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TTSHandler{
		aiClient: aiClient,
		logger:   logger,
	}
}

// Speak はテキストを音声に変換し、mp3ファイルとして返すハンドラ
func (h *TTSHandler) Speak(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Speak"))

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", user.ID))

	var req model.SpeakRequest
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

	audio, err := h.aiClient.Speak(r.Context(), req.Text)
	if err != nil {
		logger.Error("Error synthesizing speech", slog.Any("error", err))
		appErr := model.NewAppError("TTS_FAILED", "音声の生成に失敗しました。", "", model.ErrUpstreamService)
		webutil.HandleError(w, logger, appErr)
		return
	}

	logger.Info("Speech synthesized successfully", slog.Int("bytes", len(audio)))

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="speech.mp3"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}
