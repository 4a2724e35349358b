//go:generate mockery --name ObjectStore --output ./mocks --outpkg mocks --case=underscore
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// ObjectStore は画像バイナリの保存先を抽象化します
type ObjectStore interface {
	// Upload はオブジェクトを保存し、公開URLを返します
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete はオブジェクトを削除します
	Delete(ctx context.Context, key string) error
}

// BuildObjectKey はアップロード用の衝突しにくいキーを生成します。
// 形式: uploads/<タイムスタンプ>_<ランダム8桁>_<サニタイズ済みファイル名>
func BuildObjectKey(originalFilename string, now time.Time, randomSuffix string) string {
	timestamp := now.Format("20060102_150405")
	return fmt.Sprintf("uploads/%s_%s_%s", timestamp, randomSuffix, SanitizeFilename(originalFilename))
}

// SanitizeFilename はパス区切りや空白を取り除いたファイル名を返します
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == ".." {
		name = "image"
	}
	return strings.ToLower(name)
}

// ContentTypeForFilename は拡張子からContent-Typeを決定します。
// png/gif以外はjpegとして扱います。
func ContentTypeForFilename(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
