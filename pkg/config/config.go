package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	FirebaseProject    string
	Environment        string
	TranslationAPIBase string
	TranslationWSURL   string
	RoomID             string
	DefaultRoomTitle   string
	DefaultLocale      string
	RoomPageBase       string
	MaxSessions        int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		Environment:        getEnv("ENVIRONMENT", "development"),
		TranslationAPIBase: getEnv("TRANSLATION_API_BASE", "https://api.livetr.flit.to"),
		TranslationWSURL:   getEnv("TRANSLATION_WS_URL", "wss://api.livetr.flit.to/ws"),
		RoomID:             getEnv("LIVE_TRANSLATION_ROOM", ""),
		DefaultRoomTitle:   getEnv("LIVE_TRANSLATION_ROOM_TITLE", "Live Translation"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en"),
		RoomPageBase:       getEnv("ROOM_PAGE_BASE", "https://livetr.flit.to/chat"),
		MaxSessions:        getEnvAsInt("MAX_TRANSLATION_SESSIONS", 256),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
