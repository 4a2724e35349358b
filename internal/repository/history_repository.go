//go:generate mockery --name HistoryRepository --output ./mocks --outpkg mocks --case=underscore
//go:generate mockery --name DetectedWordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"shirupic/internal/middleware"
	"shirupic/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository は解析履歴の永続化を担います。
// 書き込み系はトランザクションハンドル(tx)を受け取ります。履歴と検出単語の
// 整合性はサービス層が同一トランザクションで両リポジトリを呼ぶことで保ちます。
type HistoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, history *model.History) error
	FindByID(ctx context.Context, db *gorm.DB, historyID uuid.UUID) (*model.History, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID string) ([]*model.History, error)
	Delete(ctx context.Context, tx *gorm.DB, historyID uuid.UUID) error
}

// DetectedWordRepository は検出単語の永続化を担います。
// 検出単語は必ず履歴に紐づくバッチとして生成・削除されます。
type DetectedWordRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, words []*model.DetectedWord) error
	FindByHistoryID(ctx context.Context, db *gorm.DB, historyID uuid.UUID) ([]*model.DetectedWord, error)
	DeleteByHistoryID(ctx context.Context, tx *gorm.DB, historyID uuid.UUID) error
}

type gormHistoryRepository struct{}

func NewGormHistoryRepository() HistoryRepository {
	return &gormHistoryRepository{}
}

func (r *gormHistoryRepository) Create(ctx context.Context, tx *gorm.DB, history *model.History) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(history)
	if result.Error != nil {
		logger.Error("Error creating history in DB",
			"error", result.Error,
			"user_id", history.UserID,
			"history_id", history.HistoryID.String(),
		)
		return fmt.Errorf("gormHistoryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormHistoryRepository) FindByID(ctx context.Context, db *gorm.DB, historyID uuid.UUID) (*model.History, error) {
	logger := middleware.GetLogger(ctx)
	var history model.History
	result := db.WithContext(ctx).Where("history_id = ?", historyID).First(&history)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding history by ID in DB",
			"error", result.Error,
			"history_id", historyID.String(),
		)
		return nil, fmt.Errorf("gormHistoryRepository.FindByID: %w", result.Error)
	}
	return &history, nil
}

func (r *gormHistoryRepository) FindByUser(ctx context.Context, db *gorm.DB, userID string) ([]*model.History, error) {
	logger := middleware.GetLogger(ctx)
	var histories []*model.History
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&histories)
	if result.Error != nil {
		logger.Error("Error finding histories by user in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormHistoryRepository.FindByUser: %w", result.Error)
	}
	return histories, nil
}

func (r *gormHistoryRepository) Delete(ctx context.Context, tx *gorm.DB, historyID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("history_id = ?", historyID).Delete(&model.History{})
	if result.Error != nil {
		logger.Error("Error deleting history in DB",
			"error", result.Error,
			"history_id", historyID.String(),
		)
		return fmt.Errorf("gormHistoryRepository.Delete: %w", result.Error)
	}
	// 既に削除済みの場合は RowsAffected が 0 になるが、二重削除は安全とする
	return nil
}

type gormDetectedWordRepository struct{}

func NewGormDetectedWordRepository() DetectedWordRepository {
	return &gormDetectedWordRepository{}
}

func (r *gormDetectedWordRepository) CreateBatch(ctx context.Context, tx *gorm.DB, words []*model.DetectedWord) error {
	logger := middleware.GetLogger(ctx)
	if len(words) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(words)
	if result.Error != nil {
		logger.Error("Error creating detected words in DB",
			"error", result.Error,
			"count", len(words),
		)
		return fmt.Errorf("gormDetectedWordRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormDetectedWordRepository) FindByHistoryID(ctx context.Context, db *gorm.DB, historyID uuid.UUID) ([]*model.DetectedWord, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.DetectedWord
	result := db.WithContext(ctx).Where("history_id = ?", historyID).Find(&words)
	if result.Error != nil {
		logger.Error("Error finding detected words in DB",
			"error", result.Error,
			"history_id", historyID.String(),
		)
		return nil, fmt.Errorf("gormDetectedWordRepository.FindByHistoryID: %w", result.Error)
	}
	return words, nil
}

func (r *gormDetectedWordRepository) DeleteByHistoryID(ctx context.Context, tx *gorm.DB, historyID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("history_id = ?", historyID).Delete(&model.DetectedWord{})
	if result.Error != nil {
		logger.Error("Error deleting detected words in DB",
			"error", result.Error,
			"history_id", historyID.String(),
		)
		return fmt.Errorf("gormDetectedWordRepository.DeleteByHistoryID: %w", result.Error)
	}
	return nil
}
