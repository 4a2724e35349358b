//go:generate mockery --name WordService --output ./mocks --outpkg mocks --case=underscore
// internal/service/word_service.go
package service

import (
	"context"
	"errors"

	"shirupic/internal/middleware"
	"shirupic/internal/model"
	"shirupic/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WordService は単語帳のCRUDを担います。単一行の操作のみで、
// 複数リソースにまたがる整合性は扱いません。
type WordService interface {
	AddWord(ctx context.Context, userID string, req *model.PostWordRequest) (*model.Word, error)
	ListWords(ctx context.Context, userID string) ([]*model.Word, error)
	UpdateWord(ctx context.Context, userID string, wordID uuid.UUID, req *model.UpdateWordRequest) (*model.Word, error)
	DeleteWord(ctx context.Context, userID string, wordID uuid.UUID) error
}

type wordService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository) WordService {
	return &wordService{
		db:       db,
		wordRepo: wordRepo,
	}
}

func (s *wordService) AddWord(ctx context.Context, userID string, req *model.PostWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)

	if req.Word == "" || req.Kana == "" || req.Meaning == "" {
		return nil, model.ErrInvalidInput
	}

	word := &model.Word{
		WordID:  uuid.New(),
		UserID:  userID,
		Word:    req.Word,
		Kana:    req.Kana,
		Meaning: req.Meaning,
	}
	if err := s.wordRepo.Create(ctx, s.db, word); err != nil {
		logger.Error("Error creating word", "error", err)
		return nil, model.ErrInternalServer
	}
	return word, nil
}

func (s *wordService) ListWords(ctx context.Context, userID string) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)

	words, err := s.wordRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Error listing words", "error", err)
		return nil, model.ErrInternalServer
	}
	return words, nil
}

func (s *wordService) UpdateWord(ctx context.Context, userID string, wordID uuid.UUID, req *model.UpdateWordRequest) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)

	updates := make(map[string]interface{})
	if req.Word != nil && *req.Word != "" {
		updates["word"] = *req.Word
	}
	if req.Kana != nil && *req.Kana != "" {
		updates["kana"] = *req.Kana
	}
	if req.Meaning != nil && *req.Meaning != "" {
		updates["meaning"] = *req.Meaning
	}
	if len(updates) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "更新するフィールドが指定されていません。", "", model.ErrInvalidInput)
	}

	if err := s.wordRepo.Update(ctx, s.db, userID, wordID, updates); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error updating word", "error", err)
		return nil, model.ErrInternalServer
	}

	word, err := s.wordRepo.FindByID(ctx, s.db, userID, wordID)
	if err != nil {
		logger.Error("Error fetching updated word", "error", err)
		return nil, model.ErrInternalServer
	}
	return word, nil
}

func (s *wordService) DeleteWord(ctx context.Context, userID string, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.wordRepo.Delete(ctx, s.db, userID, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		logger.Error("Error deleting word", "error", err)
		return model.ErrInternalServer
	}
	return nil
}
