package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string

	// Pre-shared secret both sides of the SIS link sign with.
	SyncSharedSecret string

	// API keys identifying which system is speaking on the sync channel.
	SISAPIKey  string
	LMSAPIKey  string
	HRMSAPIKey string

	SISBaseURL string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	SyncSharedSecret = GetEnv("SYNC_SHARED_SECRET")
	SISAPIKey = GetEnv("SIS_API_KEY")
	LMSAPIKey = GetEnv("LMS_API_KEY")
	HRMSAPIKey = GetEnv("HRMS_API_KEY")
	SISBaseURL = strings.TrimRight(GetEnv("SIS_BASE_URL"), "/")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if SyncSharedSecret == "" {
		log.Println("❌ SYNC_SHARED_SECRET is not set — sync endpoints will reject everything")
	}
	if SISBaseURL == "" {
		log.Println("⚠️ SIS_BASE_URL is not set, outbound sync disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// PeerAPIKeys maps the configured API keys to the peer name they identify.
// Empty keys are excluded so a missing env var can never become a valid credential.
func PeerAPIKeys() map[string]string {
	peers := map[string]string{}
	if SISAPIKey != "" {
		peers[SISAPIKey] = "sis"
	}
	if LMSAPIKey != "" {
		peers[LMSAPIKey] = "lms"
	}
	if HRMSAPIKey != "" {
		peers[HRMSAPIKey] = "hrms"
	}
	return peers
}
