package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shirupic/internal/middleware"
	"shirupic/internal/model"
	"shirupic/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testUser = model.AuthUser{
	ID:    "user-123",
	Name:  "太郎",
	Email: "taro@example.com",
}

// newAuthedRequest は認証済みユーザーをコンテキストに載せたリクエストを作ります
func newAuthedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUser(req.Context(), testUser))
}

// withURLParam はchiのURLパラメータをリクエストに設定します
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestWordHandler_GetWords(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		words := []*model.Word{
			{WordID: uuid.New(), UserID: testUser.ID, Word: "犬", Kana: "いぬ", Meaning: "狗"},
		}
		svc.On("ListWords", mock.Anything, testUser.ID).Return(words, nil).Once()

		req := newAuthedRequest(t, http.MethodGet, "/api/wordbook", nil)
		rec := httptest.NewRecorder()
		h.GetWords(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got []*model.Word
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "犬", got[0].Word)
	})

	t.Run("0件でも空配列を返す", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		svc.On("ListWords", mock.Anything, testUser.ID).Return(nil, nil).Once()

		req := newAuthedRequest(t, http.MethodGet, "/api/wordbook", nil)
		rec := httptest.NewRecorder()
		h.GetWords(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("未認証", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/wordbook", nil)
		rec := httptest.NewRecorder()
		h.GetWords(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestWordHandler_AddWord(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		created := &model.Word{WordID: uuid.New(), UserID: testUser.ID, Word: "猫", Kana: "ねこ", Meaning: "猫"}
		svc.On("AddWord", mock.Anything, testUser.ID, &model.PostWordRequest{
			Word: "猫", Kana: "ねこ", Meaning: "猫",
		}).Return(created, nil).Once()

		body := []byte(`{"word":"猫","kana":"ねこ","meaning":"猫"}`)
		req := newAuthedRequest(t, http.MethodPost, "/api/wordbook/add", body)
		rec := httptest.NewRecorder()
		h.AddWord(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("必須フィールドなしはバリデーションエラー", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		body := []byte(`{"word":"猫"}`)
		req := newAuthedRequest(t, http.MethodPost, "/api/wordbook/add", body)
		rec := httptest.NewRecorder()
		h.AddWord(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		svc.AssertNotCalled(t, "AddWord", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("壊れたJSON", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		req := newAuthedRequest(t, http.MethodPost, "/api/wordbook/add", []byte(`{invalid`))
		rec := httptest.NewRecorder()
		h.AddWord(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWordHandler_UpdateWord(t *testing.T) {
	wordID := uuid.New()

	t.Run("正常系", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		updated := &model.Word{WordID: wordID, UserID: testUser.ID, Word: "犬", Kana: "イヌ", Meaning: "狗"}
		svc.On("UpdateWord", mock.Anything, testUser.ID, wordID, mock.Anything).Return(updated, nil).Once()

		body := []byte(`{"kana":"イヌ"}`)
		req := newAuthedRequest(t, http.MethodPut, "/api/wordbook/"+wordID.String(), body)
		req = withURLParam(req, "word_id", wordID.String())
		rec := httptest.NewRecorder()
		h.UpdateWord(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("不正なUUID", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		req := newAuthedRequest(t, http.MethodPut, "/api/wordbook/not-a-uuid", []byte(`{}`))
		req = withURLParam(req, "word_id", "not-a-uuid")
		rec := httptest.NewRecorder()
		h.UpdateWord(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_URL_PARAM", resp.Error.Code)
	})

	t.Run("対象が存在しない", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		svc.On("UpdateWord", mock.Anything, testUser.ID, wordID, mock.Anything).
			Return(nil, model.ErrNotFound).Once()

		body := []byte(`{"kana":"イヌ"}`)
		req := newAuthedRequest(t, http.MethodPut, "/api/wordbook/"+wordID.String(), body)
		req = withURLParam(req, "word_id", wordID.String())
		rec := httptest.NewRecorder()
		h.UpdateWord(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWordHandler_DeleteWord(t *testing.T) {
	wordID := uuid.New()

	t.Run("正常系", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		svc.On("DeleteWord", mock.Anything, testUser.ID, wordID).Return(nil).Once()

		req := newAuthedRequest(t, http.MethodDelete, "/api/wordbook/"+wordID.String(), nil)
		req = withURLParam(req, "word_id", wordID.String())
		rec := httptest.NewRecorder()
		h.DeleteWord(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "単語を削除しました。")
	})

	t.Run("対象が存在しない", func(t *testing.T) {
		svc := mocks.NewWordService(t)
		h := NewWordHandler(svc, nil)

		svc.On("DeleteWord", mock.Anything, testUser.ID, wordID).Return(model.ErrNotFound).Once()

		req := newAuthedRequest(t, http.MethodDelete, "/api/wordbook/"+wordID.String(), nil)
		req = withURLParam(req, "word_id", wordID.String())
		rec := httptest.NewRecorder()
		h.DeleteWord(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
