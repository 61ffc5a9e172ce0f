package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host                   string
		DebugHost              string
		ShutdownTimeout        time.Duration
		SessionExpirationDelta time.Duration
	}

	StorageConfig struct {
		Driver string // bolt | memory
		Path   string
	}

	ReportsConfig struct {
		Schedule string // cron spec; empty disables the scheduled headteacher report
	}

	AvatarConfig struct {
		MaxSide  int
		MaxBytes int64
	}

	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		SecretKey        string
		DefaultFromEmail string
		HeadteacherEmail string
		FrontendBaseURL  string
		RollbarToken     string
		SendgridAPIKey   string
		WorkDir          string

		Server  ServerConfig
		Storage StorageConfig
		Reports ReportsConfig
		Avatar  AvatarConfig
	}
)

// NewConfig loads the configuration of the current ENV (DEV by default).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "LessonNotes")
	v.SetDefault("secretKey", "k3s9-lq)vnb$+12=dz&uoxh2(h!x)#*c2(#yg4h^$ceg8vq2")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("headteacherEmail", "headteacher@school.com")
	v.SetDefault("frontendBaseURL", "http://localhost:8080")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("serverHost", ":8000")
	v.SetDefault("serverDebugHost", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("sessionExpirationDelta", 7*24*time.Hour)
	v.SetDefault("storageDriver", "bolt")
	v.SetDefault("storagePath", filepath.Join("data", "lessonnotes.db"))
	v.SetDefault("reportSchedule", "")
	v.SetDefault("avatarMaxSide", 256)
	v.SetDefault("avatarMaxBytes", int64(2<<20))

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		HeadteacherEmail: v.GetString("headteacherEmail"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		WorkDir:          wd,
		Server: ServerConfig{
			Host:                   v.GetString("serverHost"),
			DebugHost:              v.GetString("serverDebugHost"),
			ShutdownTimeout:        v.GetDuration("serverShutdownTimeout"),
			SessionExpirationDelta: v.GetDuration("sessionExpirationDelta"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("storageDriver"),
			Path:   v.GetString("storagePath"),
		},
		Reports: ReportsConfig{
			Schedule: v.GetString("reportSchedule"),
		},
		Avatar: AvatarConfig{
			MaxSide:  v.GetInt("avatarMaxSide"),
			MaxBytes: v.GetInt64("avatarMaxBytes"),
		},
	}
}

// NewTestConfig returns the configuration used by tests, without reading the environment.
func NewTestConfig() *Config {
	return &Config{
		TestMode:         true,
		Env:              "TEST",
		Build:            "test",
		AppName:          "LessonNotes",
		SecretKey:        "test-secret",
		DefaultFromEmail: "noreply@localhost",
		HeadteacherEmail: "headteacher@school.com",
		FrontendBaseURL:  "http://localhost:8080",
		Server: ServerConfig{
			ShutdownTimeout:        time.Second,
			SessionExpirationDelta: time.Hour,
		},
		Storage: StorageConfig{Driver: "memory"},
		Avatar:  AvatarConfig{MaxSide: 256, MaxBytes: 2 << 20},
	}
}
