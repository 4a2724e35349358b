package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	aimocks "shirupic/internal/ai/mocks"
	"shirupic/internal/middleware"
	"shirupic/internal/model"
	"shirupic/internal/service"
	svcmocks "shirupic/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newImageUploadRequest はマルチパートの画像アップロードリクエストを組み立てます
func newImageUploadRequest(t *testing.T, fieldName, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/image/analyze", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req.WithContext(middleware.WithUser(req.Context(), testUser))
}

func sampleAnalysis() *model.AnalysisResult {
	return &model.AnalysisResult{
		Words: []model.AnalyzedWord{
			{ID: uuid.New().String(), Word: "猫", Kana: "ねこ", Meaning: "猫", Position: model.Position{X: 50, Y: 50}},
		},
		Sentence:           "猫がいます。",
		TranslatedSentence: "有一只猫。",
	}
}

func TestImageHandler_AnalyzeImage_Success(t *testing.T) {
	aiClient := aimocks.NewClient(t)
	historySvc := svcmocks.NewHistoryService(t)
	h := NewImageHandler(aiClient, historySvc, nil)

	imageData := []byte("fake-image-bytes")
	analysis := sampleAnalysis()
	aiClient.On("AnalyzeImage", mock.Anything, imageData, "image/jpeg").Return(analysis, nil).Once()

	history := &model.History{
		HistoryID: uuid.New(),
		UserID:    testUser.ID,
		ImageURL:  "https://example.com/uploads/photo.jpg",
		WordCount: 1,
	}
	historySvc.On("CreateHistory", mock.Anything, testUser.ID, mock.MatchedBy(func(in *service.CreateHistoryInput) bool {
		return bytes.Equal(in.ImageData, imageData) &&
			in.Sentence == "猫がいます。" &&
			len(in.Words) == 1
	})).Return(history, nil).Once()

	req := newImageUploadRequest(t, "image", "photo.jpg", imageData)
	rec := httptest.NewRecorder()
	h.AnalyzeImage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp model.AnalyzeImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, history.ImageURL, resp.ImageURL)
	assert.Equal(t, history.HistoryID.String(), resp.HistoryID)
	assert.Len(t, resp.Words, 1)
	assert.Equal(t, "猫がいます。", resp.Sentence)
	assert.Equal(t, "有一只猫。", resp.TranslatedSentence)
}

func TestImageHandler_AnalyzeImage_AIFailure_StillSucceeds(t *testing.T) {
	aiClient := aimocks.NewClient(t)
	historySvc := svcmocks.NewHistoryService(t)
	h := NewImageHandler(aiClient, historySvc, nil)

	imageData := []byte("fake-image-bytes")
	aiClient.On("AnalyzeImage", mock.Anything, imageData, "image/png").
		Return(nil, errors.New("api quota exceeded")).Once()

	history := &model.History{HistoryID: uuid.New(), UserID: testUser.ID}
	// モデル呼び出しが失敗してもプレースホルダの結果で履歴は作られる
	historySvc.On("CreateHistory", mock.Anything, testUser.ID, mock.MatchedBy(func(in *service.CreateHistoryInput) bool {
		return in.Sentence == "画像を分析できません。" && len(in.Words) == 0
	})).Return(history, nil).Once()

	req := newImageUploadRequest(t, "image", "photo.png", imageData)
	rec := httptest.NewRecorder()
	h.AnalyzeImage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp model.AnalyzeImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "画像を分析できません。", resp.Sentence)
	assert.Equal(t, "无法分析图像。", resp.TranslatedSentence)
	assert.Empty(t, resp.Words)
}

func TestImageHandler_AnalyzeImage_MissingFile(t *testing.T) {
	aiClient := aimocks.NewClient(t)
	historySvc := svcmocks.NewHistoryService(t)
	h := NewImageHandler(aiClient, historySvc, nil)

	req := newImageUploadRequest(t, "wrong_field", "photo.jpg", []byte("data"))
	rec := httptest.NewRecorder()
	h.AnalyzeImage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "IMAGE_REQUIRED", resp.Error.Code)
}

func TestImageHandler_AnalyzeImage_UnsupportedFileType(t *testing.T) {
	aiClient := aimocks.NewClient(t)
	historySvc := svcmocks.NewHistoryService(t)
	h := NewImageHandler(aiClient, historySvc, nil)

	req := newImageUploadRequest(t, "image", "document.pdf", []byte("data"))
	rec := httptest.NewRecorder()
	h.AnalyzeImage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
	aiClient.AssertNotCalled(t, "AnalyzeImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestImageHandler_AnalyzeImage_HistoryCreationFails(t *testing.T) {
	aiClient := aimocks.NewClient(t)
	historySvc := svcmocks.NewHistoryService(t)
	h := NewImageHandler(aiClient, historySvc, nil)

	imageData := []byte("fake-image-bytes")
	aiClient.On("AnalyzeImage", mock.Anything, imageData, "image/jpeg").Return(sampleAnalysis(), nil).Once()
	historySvc.On("CreateHistory", mock.Anything, testUser.ID, mock.Anything).
		Return(nil, model.NewAppError("UPLOAD_FAILED", "画像のアップロードに失敗しました。", "", model.ErrUploadFailed)).Once()

	req := newImageUploadRequest(t, "image", "photo.jpg", imageData)
	rec := httptest.NewRecorder()
	h.AnalyzeImage(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIsAllowedImage(t *testing.T) {
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"anim.gif", true},
		{"photo.webp", true},
		{"document.pdf", false},
		{"script.sh", false},
		{"noext", false},
		{"trailingdot.", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.allowed, isAllowedImage(tt.filename))
		})
	}
}
