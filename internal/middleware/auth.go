package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shirupic/internal/config"
	"shirupic/internal/model"
	"shirupic/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// userCtxKey はコンテキストに認証済みユーザーを格納するためのキーです。
type userCtxKey struct{}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証するミドルウェアです。
// 検証に成功した場合のみ後段のハンドラが実行されます。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			// 1. Authorization ヘッダーからトークンを取得
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}
			tokenString := headerParts[1]

			// 2. JWTをパースし、署名と有効期限を検証
			claims := &model.UserClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			})

			if err != nil {
				// 期限切れはコードを分けてクライアントが再ログインを判断できるようにする
				if errors.Is(err, jwt.ErrTokenExpired) {
					logger.Warn("JWT auth failed: Token expired")
					appErr := model.NewAppError("TOKEN_EXPIRED", "トークンの有効期限が切れています。", "", model.ErrUnauthorized)
					webutil.HandleError(w, logger, appErr)
					return
				}
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			if !token.Valid || claims.Subject == "" {
				logger.Warn("JWT auth failed: Subject (sub) claim missing")
				appErr := model.NewAppError("INVALID_TOKEN", "トークンにユーザー情報が含まれていません。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			user := model.AuthUser{
				ID:      claims.Subject,
				Name:    claims.Name,
				Email:   claims.Email,
				Picture: claims.Picture,
			}

			ctx := context.WithValue(r.Context(), userCtxKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext はコンテキストから認証済みユーザーを取得します。
func GetUserFromContext(ctx context.Context) (model.AuthUser, error) {
	user, ok := ctx.Value(userCtxKey{}).(model.AuthUser)
	if !ok {
		return model.AuthUser{}, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrInternalServer)
	}
	return user, nil
}

// WithUser は認証済みユーザーを格納したコンテキストを返します（テスト用）。
func WithUser(ctx context.Context, user model.AuthUser) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}
