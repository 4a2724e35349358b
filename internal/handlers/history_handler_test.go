package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shirupic/internal/model"
	"shirupic/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHistoryHandler_GetHistories(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		histories := []*model.History{
			{HistoryID: uuid.New(), UserID: testUser.ID, Sentence: "猫がいます。"},
		}
		svc.On("ListHistories", mock.Anything, testUser.ID).Return(histories, nil).Once()

		req := newAuthedRequest(t, http.MethodGet, "/api/history", nil)
		rec := httptest.NewRecorder()
		h.GetHistories(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("0件でも空配列を返す", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		svc.On("ListHistories", mock.Anything, testUser.ID).Return(nil, nil).Once()

		req := newAuthedRequest(t, http.MethodGet, "/api/history", nil)
		rec := httptest.NewRecorder()
		h.GetHistories(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestHistoryHandler_GetHistory(t *testing.T) {
	historyID := uuid.New()

	t.Run("正常系", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		detail := &model.HistoryDetail{
			History: model.History{HistoryID: historyID, UserID: testUser.ID, Sentence: "猫がいます。"},
			Words: []*model.DetectedWord{
				{DetectedWordID: uuid.New(), HistoryID: historyID, Word: "猫", Kana: "ねこ", Meaning: "猫"},
			},
		}
		svc.On("GetHistoryDetail", mock.Anything, historyID).Return(detail, nil).Once()

		req := newAuthedRequest(t, http.MethodGet, "/api/history/"+historyID.String(), nil)
		req = withURLParam(req, "history_id", historyID.String())
		rec := httptest.NewRecorder()
		h.GetHistory(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("存在しない履歴は404", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		svc.On("GetHistoryDetail", mock.Anything, historyID).Return(nil, model.ErrNotFound).Once()

		req := newAuthedRequest(t, http.MethodGet, "/api/history/"+historyID.String(), nil)
		req = withURLParam(req, "history_id", historyID.String())
		rec := httptest.NewRecorder()
		h.GetHistory(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})

	t.Run("他人の履歴は403", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		detail := &model.HistoryDetail{
			History: model.History{HistoryID: historyID, UserID: "someone-else"},
		}
		svc.On("GetHistoryDetail", mock.Anything, historyID).Return(detail, nil).Once()

		req := newAuthedRequest(t, http.MethodGet, "/api/history/"+historyID.String(), nil)
		req = withURLParam(req, "history_id", historyID.String())
		rec := httptest.NewRecorder()
		h.GetHistory(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	})

	t.Run("不正なUUID", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		req := newAuthedRequest(t, http.MethodGet, "/api/history/abc", nil)
		req = withURLParam(req, "history_id", "abc")
		rec := httptest.NewRecorder()
		h.GetHistory(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHistoryHandler_DeleteHistory(t *testing.T) {
	historyID := uuid.New()

	t.Run("正常系", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		detail := &model.HistoryDetail{
			History: model.History{HistoryID: historyID, UserID: testUser.ID},
		}
		svc.On("GetHistoryDetail", mock.Anything, historyID).Return(detail, nil).Once()
		svc.On("DeleteHistory", mock.Anything, historyID).Return(nil).Once()

		req := newAuthedRequest(t, http.MethodDelete, "/api/history/"+historyID.String(), nil)
		req = withURLParam(req, "history_id", historyID.String())
		rec := httptest.NewRecorder()
		h.DeleteHistory(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "記録を削除しました。")
	})

	t.Run("他人の履歴は削除できない", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		detail := &model.HistoryDetail{
			History: model.History{HistoryID: historyID, UserID: "someone-else"},
		}
		svc.On("GetHistoryDetail", mock.Anything, historyID).Return(detail, nil).Once()

		req := newAuthedRequest(t, http.MethodDelete, "/api/history/"+historyID.String(), nil)
		req = withURLParam(req, "history_id", historyID.String())
		rec := httptest.NewRecorder()
		h.DeleteHistory(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "DeleteHistory", mock.Anything, mock.Anything)
	})

	t.Run("存在しない履歴は404", func(t *testing.T) {
		svc := mocks.NewHistoryService(t)
		h := NewHistoryHandler(svc, nil)

		svc.On("GetHistoryDetail", mock.Anything, historyID).Return(nil, model.ErrNotFound).Once()

		req := newAuthedRequest(t, http.MethodDelete, "/api/history/"+historyID.String(), nil)
		req = withURLParam(req, "history_id", historyID.String())
		rec := httptest.NewRecorder()
		h.DeleteHistory(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
