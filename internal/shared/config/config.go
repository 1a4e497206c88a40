package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"resume-screener/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	CORSAllowOrigin    []string
	ObjectStoreType    string
	LocalStoreDir      string
	UploadDir          string
	AWSRegion          string
	S3Bucket           string
	S3Prefix           string
	SSEKMSKeyID        string
	DatabaseURL        string
	RedisURL           string
	JobDescriptionPath string
	SkillsFile         string
	SimilarityStrategy string
	EmbeddingAPIKey    string
	EmbeddingBaseURL   string
	EmbeddingModel     string
	RejectionThreshold float64
	DefaultExperience  float64
	ModelKey           string
	ModelAutoTrain     bool
	ScreenTimeout      time.Duration
	LogLevel           string
	RateLimitRPS       float64
	RateLimitBurst     int
}

var defaults = map[string]any{
	"PORT":                     "8000",
	"ENV":                      "dev",
	"CORS_ALLOW_ORIGINS":       "http://localhost:5173,http://localhost:5174,http://localhost:5175",
	"OBJECT_STORE":             "local",
	"LOCAL_STORE_DIR":          "./data",
	"UPLOAD_DIR":               "uploads",
	"JOB_DESCRIPTION_PATH":     "sample_job.txt",
	"SIMILARITY_STRATEGY":      "tfidf",
	"EMBEDDING_MODEL":          "text-embedding-3-small",
	"REJECTION_THRESHOLD":      30.0,
	"DEFAULT_EXPERIENCE_YEARS": 4.0,
	"MODEL_KEY":                "models/resume_model.json",
	"MODEL_AUTOTRAIN":          true,
	"SCREEN_TIMEOUT":           "60s",
	"LOG_LEVEL":                "info",
	"RATE_LIMIT_RPS":           2.0,
	"RATE_LIMIT_BURST":         10,
}

// New returns a viper instance with defaults applied and the environment bound.
// Callers may bind CLI flags onto it before passing it to FromViper.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	return v
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	LoadDotEnv()
	return FromViper(New())
}

// LoadDotEnv applies ./.env and ./cmd/.env to the process environment.
// Variables that are already set win. Missing files are ignored.
func LoadDotEnv() {
	loadEnvFiles(".env", "cmd/.env")
}

// FromViper materialises a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	timeout := v.GetDuration("SCREEN_TIMEOUT")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return Config{
		Port:               v.GetString("PORT"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		ObjectStoreType:    normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:      v.GetString("LOCAL_STORE_DIR"),
		UploadDir:          strings.Trim(v.GetString("UPLOAD_DIR"), "/"),
		AWSRegion:          v.GetString("AWS_REGION"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Prefix:           v.GetString("S3_PREFIX"),
		SSEKMSKeyID:        v.GetString("SSE_KMS_KEY_ID"),
		DatabaseURL:        dbURL,
		RedisURL:           strings.TrimSpace(v.GetString("REDIS_URL")),
		JobDescriptionPath: v.GetString("JOB_DESCRIPTION_PATH"),
		SkillsFile:         strings.TrimSpace(v.GetString("SKILLS_FILE")),
		SimilarityStrategy: normalizeStrategy(v.GetString("SIMILARITY_STRATEGY")),
		EmbeddingAPIKey:    v.GetString("EMBEDDING_API_KEY"),
		EmbeddingBaseURL:   v.GetString("EMBEDDING_BASE_URL"),
		EmbeddingModel:     v.GetString("EMBEDDING_MODEL"),
		RejectionThreshold: v.GetFloat64("REJECTION_THRESHOLD"),
		DefaultExperience:  v.GetFloat64("DEFAULT_EXPERIENCE_YEARS"),
		ModelKey:           v.GetString("MODEL_KEY"),
		ModelAutoTrain:     v.GetBool("MODEL_AUTOTRAIN"),
		ScreenTimeout:      timeout,
		LogLevel:           v.GetString("LOG_LEVEL"),
		RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeStrategy(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "embedding", "semantic":
		return "embedding"
	default:
		return "tfidf"
	}
}
