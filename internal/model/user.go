package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthUser は認証済みリクエストのユーザー情報です。
// JWTAuthMiddleware がコンテキストに格納し、各ハンドラが参照します。
type AuthUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"photoURL"`
}

// UserClaims は自前発行JWTのペイロードです。
// Googleから取得したプロフィールを標準クレームに加えて保持します。
type UserClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// GoogleLoginRequest はGoogleログインAPIのリクエストボディ
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// VerifyResponse はトークン検証APIのレスポンス
type VerifyResponse struct {
	User AuthUser `json:"user"`
}
