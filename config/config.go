package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Govind-619/BookMall/models"
	"github.com/Govind-619/BookMall/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the application wide connection pool
var DB *gorm.DB

// Cfg is the configuration loaded at start-up
var Cfg *Config

// Config holds all configuration for the application
type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPath        string
	JWTSecret     string
	JWTIssuer     string
	JWTExpiry     time.Duration
	SessionSecret string
	Port          string
	Env           string
	LogDir        string
	SMTP          utils.EmailConfig
	AdminAccount  string
	AdminPassword string
	AdminName     string
}

// LoadConfig loads configuration from the .env file, if present, and
// environment variables
func LoadConfig() (*Config, error) {
	// A missing .env is fine, the environment may be set directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	expiryHours, err := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "24"))
	if err != nil || expiryHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %q", os.Getenv("JWT_EXPIRY_HOURS"))
	}
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %q", os.Getenv("SMTP_PORT"))
	}

	config := &Config{
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "bookmall"),
		DBPath:        getEnv("DB_PATH", "bookmall.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getEnv("JWT_ISSUER", utils.AppName),
		JWTExpiry:     time.Duration(expiryHours) * time.Hour,
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Port:          getEnv("PORT", utils.DefaultPort),
		Env:           getEnv("ENV", "development"),
		LogDir:        getEnv("LOG_DIR", "logs"),
		SMTP: utils.EmailConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		AdminAccount:  getEnv("ADMIN_ACCOUNT", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
	}

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if config.SessionSecret == "" {
		config.SessionSecret = config.JWTSecret
	}

	Cfg = config
	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// Dialector picks the gorm driver for the configured database
func (c *Config) Dialector() (gorm.Dialector, error) {
	switch c.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(c.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

// InitDB initializes the database connection and migrates the schema
func InitDB(cfg *Config) error {
	dialector, err := cfg.Dialector()
	if err != nil {
		return err
	}

	gormConfig := &gorm.Config{}
	if cfg.Env == "production" {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	utils.LogInfo("Connected to %s database", cfg.DBDriver)
	return nil
}

// Migrate creates or updates every table of the schema
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Customer{},
		&models.Admin{},
		&models.Bookstore{},
		&models.Staff{},
		&models.Book{},
		&models.Listing{},
		&models.Cart{},
		&models.CartItem{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	return nil
}
