package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
	StorageDriverGCS   = "gcs"
)

// MQ driver names accepted in MQ_DRIVER.
const (
	MQDriverNone     = "none"
	MQDriverRabbitMQ = "rabbitmq"
	MQDriverPubSub   = "pubsub"
)

type Config struct {
	ServerPort int
	CORSOrigin string
	Database   DatabaseConfig
	JWT        JWTConfig
	Storage    StorageConfig
	Upload     UploadConfig
	MQ         MQConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// JWTConfig carries the token-signing secret and token lifetime.
// The secret is passed explicitly into the token service at construction;
// it is never read from the environment anywhere else.
type JWTConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

type StorageConfig struct {
	Driver string
	Local  LocalStorageConfig
	Minio  MinioConfig
	GCS    GCSConfig
}

type LocalStorageConfig struct {
	// Dir is the directory photos are written to and served from.
	Dir string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

type UploadConfig struct {
	// MaxFiles bounds the number of files accepted in one multipart request.
	MaxFiles int

	// MaxFileBytes bounds the size of a single photo, uploaded or fetched.
	MaxFileBytes int64

	// FetchTimeout bounds a remote URL fetch in the ingestion pipeline.
	FetchTimeout time.Duration
}

type MQConfig struct {
	Driver   string
	RabbitMQ RabbitMQConfig
	PubSub   PubSubConfig
}

type RabbitMQConfig struct {
	URL             string
	QueueDurable    bool
	QueueAutoDelete bool
	PrefetchCount   int
}

type PubSubConfig struct {
	ProjectID          string
	CredentialsFile    string
	SubscriptionSuffix string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "roamnest"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "roamnest_db"),
			UseSSL:   getEnvBool("DB_USE_SSL", false),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			TTL:        time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
			CookieName: getEnv("JWT_COOKIE_NAME", "token"),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", StorageDriverLocal),
			Local: LocalStorageConfig{
				Dir: getEnv("STORAGE_LOCAL_DIR", "uploads"),
			},
			Minio: MinioConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", "photos"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			GCS: GCSConfig{
				Bucket:          getEnv("GCS_BUCKET", ""),
				ProjectID:       getEnv("GCS_PROJECT_ID", ""),
				CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
			},
		},
		Upload: UploadConfig{
			MaxFiles:     getEnvInt("UPLOAD_MAX_FILES", 100),
			MaxFileBytes: getEnvInt64("UPLOAD_MAX_FILE_BYTES", 32<<20),
			FetchTimeout: time.Duration(getEnvInt("UPLOAD_FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		MQ: MQConfig{
			Driver: getEnv("MQ_DRIVER", MQDriverNone),
			RabbitMQ: RabbitMQConfig{
				URL:             getEnv("RABBITMQ_URL", ""),
				QueueDurable:    getEnvBool("RABBITMQ_QUEUE_DURABLE", true),
				QueueAutoDelete: getEnvBool("RABBITMQ_QUEUE_AUTO_DELETE", false),
				PrefetchCount:   getEnvInt("RABBITMQ_PREFETCH_COUNT", 0),
			},
			PubSub: PubSubConfig{
				ProjectID:          getEnv("PUBSUB_PROJECT_ID", ""),
				CredentialsFile:    getEnv("PUBSUB_CREDENTIALS_FILE", ""),
				SubscriptionSuffix: getEnv("PUBSUB_SUBSCRIPTION_SUFFIX", "-sub"),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
