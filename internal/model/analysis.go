// internal/model/analysis.go
package model

// Position は検出された物体の画像内位置（パーセント）
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AnalyzedWord はビジョンモデルが返す1単語分の情報です
type AnalyzedWord struct {
	ID       string   `json:"id"`
	Word     string   `json:"word"`
	Kana     string   `json:"kana"`
	Meaning  string   `json:"meaning"`
	Position Position `json:"position"`
}

// AnalysisResult は画像解析の結果（単語一覧 + 例文ペア）
type AnalysisResult struct {
	Words              []AnalyzedWord `json:"words"`
	Sentence           string         `json:"sentence"`
	TranslatedSentence string         `json:"translatedSentence"`
}

// AnalyzeImageResponse は /api/image/analyze のレスポンス
type AnalyzeImageResponse struct {
	ImageURL           string         `json:"imageUrl"`
	HistoryID          string         `json:"historyId"`
	Words              []AnalyzedWord `json:"words"`
	Sentence           string         `json:"sentence"`
	TranslatedSentence string         `json:"translatedSentence"`
}

// SpeakRequest は音声合成APIのリクエストボディ
type SpeakRequest struct {
	Text string `json:"text" validate:"required"`
}
