package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	aimocks "shirupic/internal/ai/mocks"
	"shirupic/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTTSHandler_Speak(t *testing.T) {
	t.Run("正常系", func(t *testing.T) {
		aiClient := aimocks.NewClient(t)
		h := NewTTSHandler(aiClient, nil)

		audio := []byte("fake-mp3-bytes")
		aiClient.On("Speak", mock.Anything, "こんにちは").Return(audio, nil).Once()

		req := newAuthedRequest(t, http.MethodPost, "/api/tts/speak", []byte(`{"text":"こんにちは"}`))
		rec := httptest.NewRecorder()
		h.Speak(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "speech.mp3")
		assert.Equal(t, audio, rec.Body.Bytes())
	})

	t.Run("テキストなしはバリデーションエラー", func(t *testing.T) {
		aiClient := aimocks.NewClient(t)
		h := NewTTSHandler(aiClient, nil)

		req := newAuthedRequest(t, http.MethodPost, "/api/tts/speak", []byte(`{"text":""}`))
		rec := httptest.NewRecorder()
		h.Speak(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		aiClient.AssertNotCalled(t, "Speak", mock.Anything, mock.Anything)
	})

	t.Run("合成失敗は502", func(t *testing.T) {
		aiClient := aimocks.NewClient(t)
		h := NewTTSHandler(aiClient, nil)

		aiClient.On("Speak", mock.Anything, "こんにちは").
			Return(nil, errors.New("upstream timeout")).Once()

		req := newAuthedRequest(t, http.MethodPost, "/api/tts/speak", []byte(`{"text":"こんにちは"}`))
		rec := httptest.NewRecorder()
		h.Speak(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "TTS_FAILED", resp.Error.Code)
	})
}
