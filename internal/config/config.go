package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// Zhipu GLM upstream
	ZhipuAPIKey  string
	ZhipuBaseURL string
	ZhipuModel   string

	// Baidu TTS
	BaiduAPIKey    string
	BaiduSecretKey string
	BaiduTokenURL  string
	BaiduTTSURL    string

	// Payment
	PaypalClientID string
	PaypalPlanID   string
	PayProvider    string // "lemon" or "paddle"

	// Share uploads
	SharedDir     string
	PublicBaseURL string

	// Optional YAML override for the name policy tables
	PolicyFile string

	// Quota
	FreeMonthlyRequests  int
	QuotaRetentionMonths int

	// Timeouts
	UpstreamTimeoutSeconds       int
	TTSTimeoutSeconds            int
	ServerShutdownTimeoutSeconds int

	// CORS
	CORSAllowedOrigins string

	// Logging
	LogLevel  string
	LogFormat string
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),

		// Zhipu
		ZhipuAPIKey:  getEnvOrDefault("ZHIPU_API_KEY", ""),
		ZhipuBaseURL: getEnvOrDefault("ZHIPU_BASE_URL", "https://open.bigmodel.cn/api/paas/v4"),
		ZhipuModel:   getEnvOrDefault("ZHIPU_MODEL", "glm-4.5-flash"),

		// Baidu TTS
		BaiduAPIKey:    getEnvOrDefault("BAIDU_API_KEY", ""),
		BaiduSecretKey: getEnvOrDefault("BAIDU_SECRET_KEY", ""),
		BaiduTokenURL:  getEnvOrDefault("BAIDU_TOKEN_URL", "https://aip.baidubce.com/oauth/2.0/token"),
		BaiduTTSURL:    getEnvOrDefault("BAIDU_TTS_URL", "https://tsn.baidu.com/text2audio"),

		// Payment
		PaypalClientID: getEnvOrDefault("PAYPAL_CLIENT_ID", ""),
		PaypalPlanID:   getEnvOrDefault("PAYPAL_PLAN_ID", ""),
		PayProvider:    getEnvOrDefault("PAY_PROVIDER", "lemon"),

		// Share uploads
		SharedDir:     getEnvOrDefault("SHARED_DIR", "shared"),
		PublicBaseURL: getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),

		PolicyFile: getEnvOrDefault("POLICY_FILE", ""),

		// Quota
		FreeMonthlyRequests:  getEnvAsInt("FREE_MONTHLY_REQUESTS", 2),
		QuotaRetentionMonths: getEnvAsInt("QUOTA_RETENTION_MONTHS", 3),

		// Timeouts
		UpstreamTimeoutSeconds:       getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 30),
		TTSTimeoutSeconds:            getEnvAsInt("TTS_TIMEOUT_SECONDS", 30),
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30),

		// CORS
		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),

		// Logging
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "debug"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}

	if AppConfig.ZhipuAPIKey == "" {
		log.Println("Warning: Zhipu API key is missing. Please set ZHIPU_API_KEY environment variable.")
	}

	if AppConfig.BaiduAPIKey == "" || AppConfig.BaiduSecretKey == "" {
		log.Println("Warning: Baidu TTS credentials are missing. Please set BAIDU_API_KEY and BAIDU_SECRET_KEY environment variables.")
	}

	if AppConfig.PaypalClientID == "" || AppConfig.PaypalPlanID == "" {
		log.Println("Warning: PayPal identifiers are missing. The /payment/config endpoint will report enabled=false.")
	}

	if AppConfig.PayProvider != "lemon" && AppConfig.PayProvider != "paddle" {
		log.Printf("Warning: unknown PAY_PROVIDER %q, falling back to lemon", AppConfig.PayProvider)
		AppConfig.PayProvider = "lemon"
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}
