// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Word は単語帳の1エントリを表します
type Word struct {
	WordID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Word      string    `gorm:"not null" json:"word"`    // 日本語の単語
	Kana      string    `gorm:"not null" json:"kana"`    // 仮名読み
	Meaning   string    `gorm:"not null" json:"meaning"` // 中国語の意味
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (Word) TableName() string {
	return "words"
}

// 単語追加リクエストDTO
type PostWordRequest struct {
	Word    string `json:"word" validate:"required"`
	Kana    string `json:"kana" validate:"required"`
	Meaning string `json:"meaning" validate:"required"`
}

// 単語更新（部分）リクエストDTO
type UpdateWordRequest struct {
	Word    *string `json:"word,omitempty" validate:"omitempty,min=1"`
	Kana    *string `json:"kana,omitempty" validate:"omitempty,min=1"`
	Meaning *string `json:"meaning,omitempty" validate:"omitempty,min=1"`
}
