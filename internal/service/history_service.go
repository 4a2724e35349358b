//go:generate mockery --name HistoryService --output ./mocks --outpkg mocks --case=underscore
// internal/service/history_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"shirupic/internal/middleware"
	"shirupic/internal/model"
	"shirupic/internal/repository"
	"shirupic/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateHistoryInput は履歴作成に必要な入力一式です。
// 画像解析は呼び出し側で済ませ、その結果をここに渡します。
type CreateHistoryInput struct {
	ImageData          []byte
	OriginalFilename   string
	Sentence           string
	TranslatedSentence string
	Words              []model.AnalyzedWord
}

// HistoryService は履歴・検出単語・保存画像の3リソースの整合性を担います。
//
// 作成: 画像アップロード成功後、履歴1件と検出単語N件を同一トランザクションで
// 書き込みます。読み手が検出単語の揃っていない履歴を見ることはありません。
// 削除: 画像はベストエフォートで削除し、履歴と検出単語は同一トランザクションで
// 消します。画像が孤児になることはあっても、消せない履歴は残しません。
type HistoryService interface {
	CreateHistory(ctx context.Context, userID string, input *CreateHistoryInput) (*model.History, error)
	GetHistoryDetail(ctx context.Context, historyID uuid.UUID) (*model.HistoryDetail, error)
	ListHistories(ctx context.Context, userID string) ([]*model.History, error)
	DeleteHistory(ctx context.Context, historyID uuid.UUID) error
}

type historyService struct {
	db       *gorm.DB
	histRepo repository.HistoryRepository
	dwRepo   repository.DetectedWordRepository
	objStore storage.ObjectStore
}

func NewHistoryService(db *gorm.DB, histRepo repository.HistoryRepository, dwRepo repository.DetectedWordRepository, objStore storage.ObjectStore) HistoryService {
	return &historyService{
		db:       db,
		histRepo: histRepo,
		dwRepo:   dwRepo,
		objStore: objStore,
	}
}

func (s *historyService) CreateHistory(ctx context.Context, userID string, input *CreateHistoryInput) (*model.History, error) {
	logger := middleware.GetLogger(ctx)

	// 1. 画像をオブジェクトストアへアップロード。
	// ここで失敗した場合はトランザクション開始前なので全体を中断する。
	key := storage.BuildObjectKey(input.OriginalFilename, time.Now(), randomSuffix())
	contentType := storage.ContentTypeForFilename(input.OriginalFilename)
	imageURL, err := s.objStore.Upload(ctx, key, input.ImageData, contentType)
	if err != nil {
		logger.Error("Image upload failed", "error", err, "key", key)
		return nil, model.NewAppError("UPLOAD_FAILED", "画像のアップロードに失敗しました。", "", model.ErrUploadFailed)
	}

	// 2. 履歴レコードを組み立てる
	history := &model.History{
		HistoryID:          uuid.New(),
		UserID:             userID,
		ImageURL:           imageURL,
		ImageStoragePath:   key,
		Sentence:           input.Sentence,
		TranslatedSentence: input.TranslatedSentence,
		WordCount:          len(input.Words),
		CreatedAt:          time.Now(),
	}

	// 3. 履歴と検出単語を1つのトランザクションで書き込む。
	// 失敗時、アップロード済みの画像は削除しない（既知の孤児化ギャップ）。
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.histRepo.Create(ctx, tx, history); err != nil {
			return err
		}

		detected := make([]*model.DetectedWord, 0, len(input.Words))
		for _, w := range input.Words {
			detected = append(detected, &model.DetectedWord{
				DetectedWordID: uuid.New(),
				HistoryID:      history.HistoryID,
				Word:           w.Word,
				Kana:           w.Kana,
				Meaning:        w.Meaning,
				PositionX:      w.Position.X,
				PositionY:      w.Position.Y,
			})
		}
		return s.dwRepo.CreateBatch(ctx, tx, detected)
	})
	if err != nil {
		logger.Error("Transaction failed for CreateHistory", "error", err, "orphaned_key", key)
		return nil, model.NewAppError("TRANSACTION_FAILED", "履歴の保存に失敗しました。", "", model.ErrTransactionFailed)
	}

	logger.Info("History created",
		"history_id", history.HistoryID.String(),
		"word_count", history.WordCount,
	)
	return history, nil
}

func (s *historyService) GetHistoryDetail(ctx context.Context, historyID uuid.UUID) (*model.HistoryDetail, error) {
	history, err := s.histRepo.FindByID(ctx, s.db, historyID)
	if err != nil {
		return nil, err
	}

	words, err := s.dwRepo.FindByHistoryID(ctx, s.db, historyID)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if words == nil {
		words = []*model.DetectedWord{}
	}

	return &model.HistoryDetail{History: *history, Words: words}, nil
}

func (s *historyService) ListHistories(ctx context.Context, userID string) ([]*model.History, error) {
	logger := middleware.GetLogger(ctx)

	histories, err := s.histRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Error listing histories", "error", err)
		return nil, model.ErrInternalServer
	}
	return histories, nil
}

// DeleteHistory は履歴とその検出単語、保存画像を削除します。
// 所有者チェックは呼び出し側（ハンドラ）がこの前に行います。
func (s *historyService) DeleteHistory(ctx context.Context, historyID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	// 1. 対象の履歴を読む。存在しなければ NotFound
	history, err := s.histRepo.FindByID(ctx, s.db, historyID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return model.ErrInternalServer
	}

	// 2. 画像をベストエフォートで削除。失敗してもレコード削除は続行する。
	// 孤児Blobを許容する方が、消せない履歴が残るよりもましという方針。
	if history.ImageStoragePath != "" {
		if err := s.objStore.Delete(ctx, history.ImageStoragePath); err != nil {
			logger.Warn("Failed to delete stored image, continuing",
				"error", err,
				"key", history.ImageStoragePath,
			)
		}
	}

	// 3. 履歴と検出単語を1つのトランザクションで削除する
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.histRepo.Delete(ctx, tx, historyID); err != nil {
			return err
		}
		return s.dwRepo.DeleteByHistoryID(ctx, tx, historyID)
	})
	if err != nil {
		logger.Error("Transaction failed for DeleteHistory", "error", err, "history_id", historyID.String())
		return model.NewAppError("TRANSACTION_FAILED", "履歴の削除に失敗しました。", "", model.ErrTransactionFailed)
	}

	logger.Info("History deleted", "history_id", historyID.String())
	return nil
}

// randomSuffix はオブジェクトキー用の8桁の16進サフィックスを返します
func randomSuffix() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// 乱数が取れない環境はまず無いが、キー衝突よりUUID代用の方が安全
		return uuid.New().String()[:8]
	}
	return hex.EncodeToString(b)
}
