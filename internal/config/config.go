package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	// Database
	DBUrl string

	// Twilio / SendGrid for conflict escalation
	TwilioAccountSID    string
	TwilioAuthToken     string
	SendGridAPIKey      string
	TwilioFromPhone     string
	SendgridFromEmail   string
	SendgridSandboxMode bool

	// Auth
	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	// Behavior toggles
	ReconcilerAutoRepair bool
	CORSHighSecurity     bool
}

const defaultOrganizationName = "HomeIQ"

func LoadConfig(appName string) *Config {
	// Missing .env is fine in deployed environments; the process env wins.
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, reading config from process env")
	}

	utils.Logger.Info("Loading config for app: ", appName)

	appUrl := mustEnv("APP_URL")
	appPort := mustEnv("APP_PORT")
	dbURL := mustEnv("DB_URL")

	privPEM, err := base64.StdEncoding.DecodeString(mustEnv("RSA_PRIVATE_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PRIVATE_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(privPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for private key")
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	pubPEM, err := base64.StdEncoding.DecodeString(mustEnv("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	twilioSID := mustEnv("TWILIO_ACCOUNT_SID")
	twilioToken := mustEnv("TWILIO_AUTH_TOKEN")
	sgAPIKey := mustEnv("SENDGRID_API_KEY")

	twilioFrom := os.Getenv("TWILIO_FROM_PHONE")
	if twilioFrom == "" {
		utils.Logger.Warn("TWILIO_FROM_PHONE is empty, defaulting to +10005550006")
		twilioFrom = "+10005550006"
	}
	sgFrom := os.Getenv("SENDGRID_FROM_EMAIL")
	if sgFrom == "" {
		utils.Logger.Warn("SENDGRID_FROM_EMAIL is empty, defaulting to no-reply@homeiq.app")
		sgFrom = "no-reply@homeiq.app"
	}

	orgName := os.Getenv("ORGANIZATION_NAME")
	if orgName == "" {
		orgName = defaultOrganizationName
	}

	return &Config{
		OrganizationName:     orgName,
		AppName:              appName,
		AppPort:              appPort,
		AppUrl:               appUrl,
		DBUrl:                dbURL,
		TwilioAccountSID:     twilioSID,
		TwilioAuthToken:      twilioToken,
		SendGridAPIKey:       sgAPIKey,
		TwilioFromPhone:      twilioFrom,
		SendgridFromEmail:    sgFrom,
		SendgridSandboxMode:  boolEnv("SENDGRID_SANDBOX_MODE", true),
		RSAPrivateKey:        privKey,
		RSAPublicKey:         pubKey,
		ReconcilerAutoRepair: boolEnv("RECONCILER_AUTO_REPAIR", true),
		CORSHighSecurity:     boolEnv("CORS_HIGH_SECURITY", false),
	}
}

func mustEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return val
}

func boolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		utils.Logger.Fatalf("%s env var is not a valid bool: %q", key, val)
	}
	return parsed
}
