// internal/handlers/image_handler.go
package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"shirupic/internal/ai"
	"shirupic/internal/middleware"
	"shirupic/internal/model"
	"shirupic/internal/service"
	"shirupic/internal/storage"
	"shirupic/internal/webutil"
)

// maxUploadSize はアップロード画像の上限サイズです
const maxUploadSize = 10 << 20 // 10MB

// allowedExtensions は受け付ける画像拡張子（小文字）です
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

type ImageHandler struct {
	aiClient       ai.Client
	historyService service.HistoryService
	logger         *slog.Logger
}

func NewImageHandler(aiClient ai.Client, historyService service.HistoryService, logger *slog.Logger) *ImageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageHandler{
		aiClient:       aiClient,
		historyService: historyService,
		logger:         logger,
	}
}

// AnalyzeImage は画像をアップロードしてビジョンモデルで解析し、
// 結果を履歴として保存した上でクライアントに返すハンドラです。
// モデル呼び出しや応答の解釈に失敗してもリクエストは失敗させず、
// プレースホルダの解析結果で処理を続けます。
func (h *ImageHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AnalyzeImage"))

	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.String("user_id", user.ID))

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		logger.Warn("Failed to parse multipart form", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "マルチパートフォームの解析に失敗しました。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		logger.Warn("Image file missing in request", slog.String("error", err.Error()))
		appErr := model.NewAppError("IMAGE_REQUIRED", "画像ファイルがありません。", "image", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	defer file.Close()

	filename := strings.ToLower(header.Filename)
	if filename == "" {
		appErr := model.NewAppError("IMAGE_REQUIRED", "ファイルが選択されていません。", "image", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if !isAllowedImage(filename) {
		logger.Warn("Unsupported file type", slog.String("filename", filename))
		appErr := model.NewAppError("UNSUPPORTED_FILE_TYPE", "サポートされていないファイル形式です。", "image", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.Any("error", err))
		webutil.HandleError(w, logger, model.ErrInternalServer)
		return
	}

	// 画像解析。呼び出し自体が失敗しても固定の結果で続行する
	contentType := storage.ContentTypeForFilename(filename)
	analysis, err := h.aiClient.AnalyzeImage(r.Context(), imageData, contentType)
	if err != nil {
		logger.Warn("Image analysis unavailable, using placeholder result", slog.Any("error", err))
		analysis = ai.UnavailableResult()
	}

	history, err := h.historyService.CreateHistory(r.Context(), user.ID, &service.CreateHistoryInput{
		ImageData:          imageData,
		OriginalFilename:   filename,
		Sentence:           analysis.Sentence,
		TranslatedSentence: analysis.TranslatedSentence,
		Words:              analysis.Words,
	})
	if err != nil {
		logger.Error("Error creating history in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Image analyzed successfully",
		slog.String("history_id", history.HistoryID.String()),
		slog.Int("word_count", history.WordCount),
	)

	resp := model.AnalyzeImageResponse{
		ImageURL:           history.ImageURL,
		HistoryID:          history.HistoryID.String(),
		Words:              analysis.Words,
		Sentence:           analysis.Sentence,
		TranslatedSentence: analysis.TranslatedSentence,
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// isAllowedImage は拡張子が許可リストに含まれるか判定します
func isAllowedImage(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	return allowedExtensions[ext]
}
