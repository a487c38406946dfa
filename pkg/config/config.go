package config

import (
	"os"
	"strconv"
	"time"

	"github.com/muje-team/muje-backend/internal/engine"
	"github.com/muje-team/muje-backend/internal/models"
)

// Config holds the service configuration loaded from the environment.
type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	MongoURI        string
	DeviceCachePath string
	AdminJWTSecret  string
}

// Load reads the service configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:        getEnv("MONGO_URI", ""),
		DeviceCachePath: getEnv("DEVICE_CACHE_PATH", "muje-cache.db"),
		AdminJWTSecret:  getEnv("ADMIN_JWT_SECRET", ""),
	}
}

// Engine returns the engine tuning data. All values are configuration, not
// logic: cooldown durations and the interleave interval can be tuned per
// deployment, and tests inject their own smaller catalogs.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		StickerCatalog: []models.StickerOption{
			{Emoji: "💪", Message: "You've got this!"},
			{Emoji: "🌟", Message: "Cheering for you!"},
			{Emoji: "🤝", Message: "We're with you"},
			{Emoji: "💚", Message: "It's okay"},
			{Emoji: "👏", Message: "You're doing great!"},
		},
		Categories: []string{
			"relationships", "love-marriage", "career", "direction",
			"job-hunting", "studies", "daily-life", "money", "parenting",
			"family", "health", "mental-health", "living-abroad",
			"starting-a-business", "legal", "trauma", "identity", "pets",
			"career-break",
		},
		EncouragementEvery: getEnvInt("ENCOURAGEMENT_EVERY", 5),
		EncouragementMessages: []string{
			"Your story matters. Thank you for having the courage to share it.",
			"You are not alone. We are here together.",
			"You made it through today. You are doing enough.",
			"Every feeling you have is valid.",
			"Be proud of yourself for holding on through hard times.",
			"Small steps still move you forward.",
			"There are people here cheering for you.",
			"You did your best today, and that is wonderful.",
		},
		NicknameCooldown:      day(getEnvInt("NICKNAME_COOLDOWN_DAYS", 90)),
		AgeGroupCooldown:      day(getEnvInt("AGE_GROUP_COOLDOWN_DAYS", 300)),
		CityCooldown:          day(getEnvInt("CITY_COOLDOWN_DAYS", 180)),
		OccupationCooldown:    day(getEnvInt("OCCUPATION_COOLDOWN_DAYS", 180)),
		DraftTTL:              day(getEnvInt("DRAFT_TTL_DAYS", 30)),
		InitialStickerBalance: getEnvInt("INITIAL_STICKER_BALANCE", 10),
	}
}

func day(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
