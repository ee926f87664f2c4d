package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config 保存由環境變數載入的執行期設定
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	SecretKey string
}

// Load 讀取 .env 與環境變數並做最基本的驗證
func Load() (Config, error) {
	// .env 不存在時不視為錯誤
	_ = godotenv.Load()

	cfg := Config{
		Port:      fallback(os.Getenv("PORT"), "8080"),
		MongoURI:  strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDB:   fallback(os.Getenv("MONGO_DB"), "userdb"),
		SecretKey: fallback(os.Getenv("SECRET_KEY"), "your-secret-key"),
	}

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("環境變數 MONGO_URI 未設定")
	}
	return cfg, nil
}

// Address 回傳 HTTP 服務監聽位址
func (c Config) Address() string {
	return ":" + c.Port
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
