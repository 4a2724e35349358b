// internal/handlers/history_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"shirupic/internal/middleware"
	"shirupic/internal/model"
	"shirupic/internal/service"
	"shirupic/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type HistoryHandler struct {
	service service.HistoryService
	logger  *slog.Logger
}

func NewHistoryHandler(s service.HistoryService, logger *slog.Logger) *HistoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryHandler{
		service: s,
		logger:  logger,
	}
}

// GetHistories は自分の履歴一覧を返すハンドラ
func (h *HistoryHandler) GetHistories(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHistories"))

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", user.ID))

	histories, err := h.service.ListHistories(r.Context(), user.ID)
	if err != nil {
		logger.Error("Error listing histories in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if histories == nil {
		histories = []*model.History{}
	}
	logger.Info("Histories listed successfully", slog.Int("count", len(histories)))
	webutil.RespondWithJSON(w, http.StatusOK, histories, logger)
}

// GetHistory は1件の履歴詳細（検出単語込み）を返すハンドラ。
// 存在確認 → 所有者チェックの順で判定します。
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHistory"))

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", user.ID))

	historyID, ok := h.parseHistoryID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("history_id", historyID.String()))

	detail, err := h.service.GetHistoryDetail(r.Context(), historyID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("History not found in service")
			appErr := model.NewAppError("NOT_FOUND", "記録が存在しません。", "", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error getting history from service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if detail.UserID != user.ID {
		logger.Warn("Ownership check failed", slog.String("owner_id", detail.UserID))
		appErr := model.NewAppError("FORBIDDEN", "この記録を閲覧する権限がありません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, detail, logger)
}

// DeleteHistory は1件の履歴を削除するハンドラ。
// 保存画像と検出単語もあわせて削除されます。
func (h *HistoryHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteHistory"))

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", user.ID))

	historyID, ok := h.parseHistoryID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("history_id", historyID.String()))

	// 所有者チェックは削除の前にここで行う
	detail, err := h.service.GetHistoryDetail(r.Context(), historyID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("History not found in service")
			appErr := model.NewAppError("NOT_FOUND", "記録が存在しません。", "", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error getting history from service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if detail.UserID != user.ID {
		logger.Warn("Ownership check failed", slog.String("owner_id", detail.UserID))
		appErr := model.NewAppError("FORBIDDEN", "この記録を削除する権限がありません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteHistory(r.Context(), historyID); err != nil {
		logger.Error("Error deleting history in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("History deleted successfully")
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "記録を削除しました。"}, logger)
}

func (h *HistoryHandler) parseHistoryID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	historyIDStr := chi.URLParam(r, "history_id")
	historyID, err := uuid.Parse(historyIDStr)
	if err != nil {
		logger.Warn("Invalid history ID format in URL", slog.String("history_id_str", historyIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "history_idの形式が正しくありません。", "history_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return historyID, true
}
