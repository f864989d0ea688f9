package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hopehub/hopehub/pkg/db"
	"github.com/hopehub/hopehub/pkg/media"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	BackendCloudinary = "cloudinary"
	BackendMinio      = "minio"
)

// DatabaseConfig selects and configures the document store
type DatabaseConfig struct {
	Driver        string `yaml:"driver" validate:"required,oneof=postgres memory"`
	URL           string `yaml:"url" validate:"required_if=Driver postgres"`
	RunMigrations bool   `yaml:"runMigrations"`
}

// CollectionsConfig names the collections in the document store
type CollectionsConfig struct {
	Requests          string `yaml:"requests" validate:"required"`
	Donations         string `yaml:"donations" validate:"required"`
	Campaigns         string `yaml:"campaigns" validate:"required"`
	EducationWebsites string `yaml:"educationWebsites" validate:"required"`
	FileUploads       string `yaml:"fileUploads" validate:"required"`
	OneDriveLinks     string `yaml:"oneDriveLinks" validate:"required"`
	WhatsappGroups    string `yaml:"whatsappGroups" validate:"required"`
}

// CloudinaryConfig holds the unsigned upload settings.
// Missing values are reported when an upload is attempted, not at load time.
type CloudinaryConfig struct {
	CloudName    string `yaml:"cloudName"`
	UploadPreset string `yaml:"uploadPreset"`
}

// MinioConfig holds the S3-compatible bucket settings
type MinioConfig struct {
	Endpoint      string `yaml:"endpoint" validate:"required"`
	AccessKey     string `yaml:"accessKey"`
	SecretKey     string `yaml:"secretKey"`
	Bucket        string `yaml:"bucket" validate:"required"`
	UseSSL        bool   `yaml:"useSSL"`
	PublicBaseURL string `yaml:"publicBaseURL" validate:"omitempty,url"`
}

// MediaConfig selects and configures the media upload backend
type MediaConfig struct {
	Backend     string           `yaml:"backend" validate:"required,oneof=cloudinary minio"`
	Folder      string           `yaml:"folder"`
	MaxFileSize int64            `yaml:"maxFileSize" validate:"min=1"`
	Cloudinary  CloudinaryConfig `yaml:"cloudinary"`
	Minio       MinioConfig      `yaml:"minio" validate:"-"`
}

// Config represents the application configuration
type Config struct {
	Database                DatabaseConfig    `yaml:"database"`
	Collections             CollectionsConfig `yaml:"collections"`
	Media                   MediaConfig       `yaml:"media"`
	ListingLimit            int               `yaml:"listingLimit" validate:"min=1"`
	NearbyRequestCount      int               `yaml:"nearbyRequestCount" validate:"min=0"`
	DonationLoadConcurrency int               `yaml:"donationLoadConcurrency" validate:"min=1"`
}

// DBCollections returns the collection names in the form the workflows take
func (c *Config) DBCollections() db.Collections {
	return db.Collections{
		Requests:          c.Collections.Requests,
		Donations:         c.Collections.Donations,
		Campaigns:         c.Collections.Campaigns,
		EducationWebsites: c.Collections.EducationWebsites,
		FileUploads:       c.Collections.FileUploads,
		OneDriveLinks:     c.Collections.OneDriveLinks,
		WhatsappGroups:    c.Collections.WhatsappGroups,
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used for any value the config file leaves unset
func Default() *Config {
	collections := db.DefaultCollections()
	return &Config{
		Database: DatabaseConfig{Driver: DriverMemory},
		Collections: CollectionsConfig{
			Requests:          collections.Requests,
			Donations:         collections.Donations,
			Campaigns:         collections.Campaigns,
			EducationWebsites: collections.EducationWebsites,
			FileUploads:       collections.FileUploads,
			OneDriveLinks:     collections.OneDriveLinks,
			WhatsappGroups:    collections.WhatsappGroups,
		},
		Media: MediaConfig{
			Backend:     BackendCloudinary,
			Folder:      "hopenotes/files",
			MaxFileSize: media.MaxFileSize,
		},
		ListingLimit:            100,
		NearbyRequestCount:      5,
		DonationLoadConcurrency: 5,
	}
}

// Load loads and validates the configuration from hopehub_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration with an environment suffix
// For example, env="test" will look for "hopehub_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Values from a .env file or the process environment override secrets in the file.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Bucket settings only matter when uploads go to minio
	if cfg.Media.Backend == BackendMinio {
		if err := validate.Struct(&cfg.Media.Minio); err != nil {
			return fmt.Errorf("config validation failed: media.minio: %w", err)
		}
	}

	if cfg.Media.MaxFileSize > media.MaxFileSize {
		return fmt.Errorf("config validation failed: media.maxFileSize %d exceeds the %s upload limit",
			cfg.Media.MaxFileSize, media.FormatFileSize(media.MaxFileSize))
	}

	return nil
}

// loadDotEnv reads a .env file next to the config file if there is one.
// Variables already set in the process environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	override := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*target = v
		}
	}

	override("HOPEHUB_DATABASE_URL", &cfg.Database.URL)
	override("CLOUDINARY_CLOUD_NAME", &cfg.Media.Cloudinary.CloudName)
	override("CLOUDINARY_UPLOAD_PRESET", &cfg.Media.Cloudinary.UploadPreset)
	override("MINIO_ACCESS_KEY", &cfg.Media.Minio.AccessKey)
	override("MINIO_SECRET_KEY", &cfg.Media.Minio.SecretKey)
}

// findConfigFile searches for hopehub_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "hopehub_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "hopehub_config.yaml"
	if env != "" {
		configFileName = "hopehub_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
