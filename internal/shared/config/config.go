package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	GeminiAPIKey    string
	LLMModel        string
	EmbedModel      string
	LexicalWeight   float64
	SemanticWeight  float64
	ExplainTopN     int
	PhoneRegion     string
	SkillsFile      string
	Env             string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	lexical := getFloat("LEXICAL_WEIGHT", 0.4)
	semantic := getFloat("SEMANTIC_WEIGHT", 0.6)
	lexical, semantic = normalizeWeights(lexical, semantic)

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.5-flash-lite"),
		EmbedModel:      getEnv("EMBED_MODEL", "text-embedding-004"),
		LexicalWeight:   lexical,
		SemanticWeight:  semantic,
		ExplainTopN:     getInt("EXPLAIN_TOP_N", 3),
		PhoneRegion:     getEnv("PHONE_REGION", "IN"),
		SkillsFile:      getEnv("SKILLS_FILE", ""),
		Env:             env,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return parsed
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return parsed
}

// normalizeWeights clamps both weights to [0,1] and rescales them to sum to 1.
func normalizeWeights(lexical, semantic float64) (float64, float64) {
	lexical = clamp01(lexical)
	semantic = clamp01(semantic)
	sum := lexical + semantic
	if sum <= 0 {
		return 0.4, 0.6
	}
	return lexical / sum, semantic / sum
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
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
