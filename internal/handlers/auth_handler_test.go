package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shirupic/internal/model"
	"shirupic/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestAuthHandler_GoogleLogin(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuthHandler(svc, nil)

		loginResp := &model.LoginResponse{
			Token: "signed-jwt",
			User:  testUser,
		}
		svc.On("LoginWithGoogle", mock.Anything, "google-id-token").Return(loginResp, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/google", jsonBody(t, map[string]string{"idToken": "google-id-token"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.GoogleLogin(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp model.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed-jwt", resp.Token)
		assert.Equal(t, testUser.ID, resp.User.ID)
	})

	t.Run("idTokenなしはバリデーションエラー", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuthHandler(svc, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/google", jsonBody(t, map[string]string{}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.GoogleLogin(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "LoginWithGoogle", mock.Anything, mock.Anything)
	})

	t.Run("検証失敗は401", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		h := NewAuthHandler(svc, nil)

		svc.On("LoginWithGoogle", mock.Anything, "bad-token").
			Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "IDトークンの検証に失敗しました。", "", model.ErrUnauthorized)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/auth/google", jsonBody(t, map[string]string{"idToken": "bad-token"}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.GoogleLogin(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "AUTHENTICATION_FAILED", resp.Error.Code)
	})
}

func TestAuthHandler_VerifyToken(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		h := NewAuthHandler(mocks.NewAuthService(t), nil)

		req := newAuthedRequest(t, http.MethodGet, "/api/auth/verify", nil)
		rec := httptest.NewRecorder()
		h.VerifyToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp model.VerifyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, testUser.ID, resp.User.ID)
		assert.Equal(t, testUser.Email, resp.User.Email)
	})

	t.Run("コンテキストにユーザーがいない場合", func(t *testing.T) {
		h := NewAuthHandler(mocks.NewAuthService(t), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
		rec := httptest.NewRecorder()
		h.VerifyToken(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
