package ai

import (
	"encoding/json"
	"strings"

	"shirupic/internal/model"

	"github.com/google/uuid"
)

// ビジョンモデルの応答はJSONのみを要求しているが、実際にはmarkdownの
// コードフェンスや前後の説明文が混ざることがある。ここでは緩くJSON部分を
// 取り出し、どうしても解釈できない場合は固定のプレースホルダに落とす。

// analysisWire はモデル応答のJSON構造です
type analysisWire struct {
	Words    []model.AnalyzedWord `json:"words"`
	Sentence sentenceWire         `json:"sentence"`
}

// sentenceWire は {"japanese":..,"chinese":..} と素の文字列の両方を受け付けます
type sentenceWire struct {
	Japanese string `json:"japanese"`
	Chinese  string `json:"chinese"`
}

func (s *sentenceWire) UnmarshalJSON(b []byte) error {
	var plain string
	if err := json.Unmarshal(b, &plain); err == nil {
		s.Japanese = plain
		return nil
	}
	type alias sentenceWire
	var obj alias
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*s = sentenceWire(obj)
	return nil
}

// ExtractJSONObject はフリーテキストから最初の '{' と最後の '}' の間を
// 取り出します。見つからない場合は ok=false を返します。
func ExtractJSONObject(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```json") {
		trimmed = strings.Replace(trimmed, "```json", "", 1)
		trimmed = strings.Replace(trimmed, "```", "", 1)
	} else if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.Replace(trimmed, "```", "", 1)
		trimmed = strings.Replace(trimmed, "```", "", 1)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return trimmed[start : end+1], true
}

// ParseAnalysisText はモデルの応答テキストを解析結果に変換します。
// 解釈に失敗してもエラーにはせず、プレースホルダの結果を返します。
func ParseAnalysisText(text string) *model.AnalysisResult {
	jsonStr, ok := ExtractJSONObject(text)
	if !ok {
		return defaultPlaceholderResult()
	}

	var wire analysisWire
	if err := json.Unmarshal([]byte(jsonStr), &wire); err != nil {
		return fallbackCatResult()
	}

	result := &model.AnalysisResult{
		Words:              wire.Words,
		Sentence:           wire.Sentence.Japanese,
		TranslatedSentence: wire.Sentence.Chinese,
	}
	normalizeWordIDs(result.Words)
	return result
}

// normalizeWordIDs はモデルがIDを返さなかった（またはダミーを返した）単語に
// 新しいUUIDを振ります
func normalizeWordIDs(words []model.AnalyzedWord) {
	for i := range words {
		id := words[i].ID
		if id == "" || id == "uuid" || id == "1" {
			words[i].ID = uuid.New().String()
		}
	}
}

// defaultPlaceholderResult はJSON部分が見つからなかった場合の固定結果です
func defaultPlaceholderResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Words: []model.AnalyzedWord{
			{
				ID:       uuid.New().String(),
				Word:     "椅子",
				Kana:     "いす",
				Meaning:  "椅子",
				Position: model.Position{X: 30, Y: 50},
			},
			{
				ID:       uuid.New().String(),
				Word:     "テーブル",
				Kana:     "てーぶる",
				Meaning:  "桌子",
				Position: model.Position{X: 70, Y: 60},
			},
		},
		Sentence:           "椅子はテーブルのそばにあります。",
		TranslatedSentence: "椅子在桌子旁边。",
	}
}

// fallbackCatResult はJSONのデコードに失敗した場合の固定結果です
func fallbackCatResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Words: []model.AnalyzedWord{
			{
				ID:       uuid.New().String(),
				Word:     "猫",
				Kana:     "ねこ",
				Meaning:  "猫",
				Position: model.Position{X: 50, Y: 50},
			},
		},
		Sentence:           "猫がいます。",
		TranslatedSentence: "有一只猫。",
	}
}

// UnavailableResult はモデル呼び出し自体に失敗した場合の結果です。
// 解析エンドポイントはこれを返してもリクエスト全体は成功扱いにします。
func UnavailableResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Words:              []model.AnalyzedWord{},
		Sentence:           "画像を分析できません。",
		TranslatedSentence: "无法分析图像。",
	}
}
