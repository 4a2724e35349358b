// internal/model/history.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// History は1回の画像解析の結果を表します。
// 画像本体はオブジェクトストアに置かれ、ImageStoragePath がそのキーです。
// レコード削除時には画像と detected_words も一緒に消えます。
type History struct {
	HistoryID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             string    `gorm:"not null;index" json:"user_id"`
	ImageURL           string    `gorm:"not null" json:"imageUrl"`
	ImageStoragePath   string    `gorm:"not null" json:"-"`
	Sentence           string    `json:"sentence"`           // 日本語の例文
	TranslatedSentence string    `json:"translatedSentence"` // 中国語訳
	WordCount          int       `gorm:"not null" json:"wordCount"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (History) TableName() string {
	return "history"
}

// DetectedWord は画像から検出された単語です。
// 必ず1つの History に属し、単独で作成・更新・削除されることはありません。
type DetectedWord struct {
	DetectedWordID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HistoryID      uuid.UUID `gorm:"type:uuid;not null;index" json:"history_id"`
	Word           string    `gorm:"not null" json:"word"`
	Kana           string    `gorm:"not null" json:"kana"`
	Meaning        string    `gorm:"not null" json:"meaning"`
	PositionX      float64   `json:"position_x"` // 画像内の横位置（パーセント）
	PositionY      float64   `json:"position_y"` // 画像内の縦位置（パーセント）
}

func (DetectedWord) TableName() string {
	return "detected_words"
}

// HistoryDetail は履歴詳細APIのレスポンス（本体 + 検出単語）
type HistoryDetail struct {
	History
	Words []*DetectedWord `json:"words"`
}
