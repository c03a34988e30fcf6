package config

import (
	"os"
	"strconv"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/buena/portfolio-service/internal/utils"
)

const (
	OrganizationName    = "Buena"
	AppName             = "portfolio-service"
	LDConnectionTimeout = 5 * time.Second
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	// Database
	DBUrl string

	// File storage
	UploadsDir string

	// External services
	OpenAIAPIKey   string
	SendGridAPIKey string
	NotifyEmail    string

	ExtractionTimeout time.Duration

	// Feature-flag snapshots
	LDFlag_SendgridFromEmail   string
	LDFlag_SendgridSandboxMode bool
	LDFlag_SeedDbWithTestData  bool
	LDFlag_ExtractionEnabled   bool
}

// LoadConfig reads required settings from the environment and snapshots
// feature flags from LaunchDarkly when LD_SDK_KEY is set. Missing required
// values are fatal; optional integrations degrade to disabled.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}

	extractionTimeout := 60 * time.Second
	if raw := os.Getenv("EXTRACTION_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			utils.Logger.Fatalf("Invalid EXTRACTION_TIMEOUT_SECONDS: %q", raw)
		}
		extractionTimeout = time.Duration(secs) * time.Second
	}

	cfg := &Config{
		OrganizationName:  OrganizationName,
		AppName:           AppName,
		AppPort:           appPort,
		AppUrl:            appUrl,
		DBUrl:             dbUrl,
		UploadsDir:        uploadsDir,
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		NotifyEmail:       os.Getenv("NOTIFY_EMAIL"),
		ExtractionTimeout: extractionTimeout,

		// Defaults when LaunchDarkly is not configured.
		LDFlag_SendgridFromEmail:   "noreply@buena.example",
		LDFlag_SendgridSandboxMode: false,
		LDFlag_SeedDbWithTestData:  false,
		LDFlag_ExtractionEnabled:   true,
	}

	loadLDFlags(cfg)

	if cfg.OpenAIAPIKey == "" {
		utils.Logger.Warn("OPENAI_API_KEY not set; document extraction disabled")
	}
	if cfg.SendGridAPIKey == "" {
		utils.Logger.Warn("SENDGRID_API_KEY not set; notification emails disabled")
	}

	return cfg
}

func loadLDFlags(cfg *Config) {
	sdkKey := os.Getenv("LD_SDK_KEY")
	if sdkKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set; using default feature flags")
		return
	}

	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	defer ldClient.Close()
	if !ldClient.Initialized() {
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}

	ctx := ldcontext.New(AppName)

	if fromEmail, err := ldClient.StringVariation("sendgrid_from_email", ctx, cfg.LDFlag_SendgridFromEmail); err == nil && fromEmail != "" {
		cfg.LDFlag_SendgridFromEmail = fromEmail
	}
	if sandbox, err := ldClient.BoolVariation("sendgrid_sandbox_mode", ctx, false); err == nil {
		cfg.LDFlag_SendgridSandboxMode = sandbox
	}
	if seed, err := ldClient.BoolVariation("seed_db_with_test_data", ctx, false); err == nil {
		cfg.LDFlag_SeedDbWithTestData = seed
	}
	if enabled, err := ldClient.BoolVariation("extraction_enabled", ctx, true); err == nil {
		cfg.LDFlag_ExtractionEnabled = enabled
	}

	utils.Logger.Debugf("Feature flags: from_email=%s sandbox=%t seed=%t extraction=%t",
		cfg.LDFlag_SendgridFromEmail, cfg.LDFlag_SendgridSandboxMode,
		cfg.LDFlag_SeedDbWithTestData, cfg.LDFlag_ExtractionEnabled)
}
