//go:generate mockery --name Client --output ./mocks --outpkg mocks --case=underscore
package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"shirupic/internal/config"
	"shirupic/internal/middleware"
	"shirupic/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// visionPrompt はビジョンモデルへの固定指示です。JSONのみを返すよう要求します。
const visionPrompt = `分析这张图片，识别图片中的物体，并给出每个物体的日语名称、假名读音和中文翻译。` +
	`还要给出每个物体在图片中的大致位置（用x和y的百分比表示）。然后，使用这些日语单词创建一个自然的日语句子，并提供中文翻译。` +
	`单个图片最多返回5个单词，并且返回的物体坐标不要重叠，如果多个识别的物体非常靠近，坐标可以相对分散。` + "\n\n" +
	`请使用以下的JSON格式返回结果，不要添加其他文本说明：` + "\n" +
	`{"words":[{"id":"uuid","word":"[日语单词]","kana":"[假名读音]","meaning":"[中文意思]","position":{"x":0,"y":0}}],` +
	`"sentence":{"japanese":"[日语句子]","chinese":"[中文翻译]"}}`

// Client はAIモデルへの2種類の呼び出し（画像解析・音声合成）を抽象化します
type Client interface {
	AnalyzeImage(ctx context.Context, imageData []byte, contentType string) (*model.AnalysisResult, error)
	Speak(ctx context.Context, text string) ([]byte, error)
}

type openAIClient struct {
	client      *openai.Client
	visionModel string
	ttsModel    string
	ttsVoice    string
}

// NewOpenAIClient は設定からOpenAIクライアントを生成します
func NewOpenAIClient(cfg *config.Config) Client {
	return &openAIClient{
		client:      openai.NewClient(cfg.OpenAI.APIKey),
		visionModel: cfg.OpenAI.VisionModel,
		ttsModel:    cfg.OpenAI.TTSModel,
		ttsVoice:    cfg.OpenAI.TTSVoice,
	}
}

// AnalyzeImage は画像をビジョンモデルに送り、検出単語と例文ペアを返します。
// 応答テキストの解釈は ParseAnalysisText に委ねられ、ここでエラーになるのは
// API呼び出しが失敗した場合だけです。
func (c *openAIClient) AnalyzeImage(ctx context.Context, imageData []byte, contentType string) (*model.AnalysisResult, error) {
	logger := middleware.GetLogger(ctx)

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(imageData))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: visionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
				},
			},
		},
	})
	if err != nil {
		logger.Error("Vision API call failed", "error", err)
		return nil, fmt.Errorf("openAIClient.AnalyzeImage: %w", model.ErrUpstreamService)
	}
	if len(resp.Choices) == 0 {
		logger.Error("Vision API returned no choices")
		return nil, fmt.Errorf("openAIClient.AnalyzeImage: empty response: %w", model.ErrUpstreamService)
	}

	text := resp.Choices[0].Message.Content
	logger.Debug("Vision API response received", "length", len(text))

	return ParseAnalysisText(text), nil
}

// Speak はテキストを音声(mp3)に変換します
func (c *openAIClient) Speak(ctx context.Context, text string) ([]byte, error) {
	logger := middleware.GetLogger(ctx)

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(c.ttsModel),
		Voice: openai.SpeechVoice(c.ttsVoice),
		Input: text,
	})
	if err != nil {
		logger.Error("TTS API call failed", "error", err)
		return nil, fmt.Errorf("openAIClient.Speak: %w", model.ErrUpstreamService)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		logger.Error("Failed to read TTS audio stream", "error", err)
		return nil, fmt.Errorf("openAIClient.Speak: %w", model.ErrUpstreamService)
	}

	return audio, nil
}
