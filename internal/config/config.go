// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	JWT struct {
		SecretKey string        `mapstructure:"secret_key"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
		Issuer    string        `mapstructure:"issuer"`
	} `mapstructure:"jwt"`
	Auth struct {
		// GoogleのIDトークン検証に使うaudience。空なら検証をスキップして
		// 未検証パースにフォールバックする（開発用）。
		GoogleClientID string `mapstructure:"google_client_id"`
	} `mapstructure:"auth"`
	OpenAI struct {
		APIKey      string `mapstructure:"api_key"`
		VisionModel string `mapstructure:"vision_model"`
		TTSModel    string `mapstructure:"tts_model"`
		TTSVoice    string `mapstructure:"tts_voice"`
	} `mapstructure:"openai"`
	Storage StorageConfig `mapstructure:"storage"`
	CORS    struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// StorageConfig はオブジェクトストア(S3)の接続設定です
type StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" or "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	// 公開URLのベース。空の場合は https://<bucket>.s3.<region>.amazonaws.com
	PublicBaseURL string `mapstructure:"public_base_url"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "SECRET_KEY")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("auth.google_client_id", "GOOGLE_CLIENT_ID")
	viper.BindEnv("storage.bucket", "STORAGE_BUCKET")
	viper.BindEnv("storage.access_key_id", "AWS_ACCESS_KEY_ID")
	viper.BindEnv("storage.secret_access_key", "AWS_SECRET_ACCESS_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using environment variables and defaults.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return nil, err
	}

	// --- デフォルト値の設定 ---
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.JWT.TokenTTL <= 0 {
		cfg.JWT.TokenTTL = 7 * 24 * time.Hour // 自前トークンの有効期限は7日
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "shirupic"
	}
	if cfg.OpenAI.VisionModel == "" {
		cfg.OpenAI.VisionModel = "gpt-4.1-mini"
	}
	if cfg.OpenAI.TTSModel == "" {
		cfg.OpenAI.TTSModel = "gpt-4o-mini-tts"
	}
	if cfg.OpenAI.TTSVoice == "" {
		cfg.OpenAI.TTSVoice = "alloy"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type"}
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key is not set in config.")
	}

	return &cfg, nil
}
