package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	StorageDriver string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	MongoURI      string
	MongoDatabase string

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel      string
	RecalcMode    string
	RepairWorkers int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		StorageDriver:    "memory",
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "goldquest",
		KafkaTopic:       "ledger_changes",
		LogLevel:         "info",
		RecalcMode:       "full",
		RepairWorkers:    2,
	}

	envStorageDriver := os.Getenv("STORAGE_DRIVER")
	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envMongoURI := os.Getenv("MONGO_URI")
	envMongoDatabase := os.Getenv("MONGO_DATABASE")
	envKafkaBrokers := os.Getenv("KAFKA_BROKERS")
	envKafkaTopic := os.Getenv("KAFKA_TOPIC")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envRecalcMode := os.Getenv("RECALC_MODE")
	envRepairWorkers := os.Getenv("REPAIR_WORKERS")

	if len(envStorageDriver) != 0 {
		env.StorageDriver = envStorageDriver
	}

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envMongoURI) != 0 {
		env.MongoURI = envMongoURI
	}

	if len(envMongoDatabase) != 0 {
		env.MongoDatabase = envMongoDatabase
	}

	if len(envKafkaBrokers) != 0 {
		env.KafkaBrokers = strings.Split(envKafkaBrokers, ",")
	}

	if len(envKafkaTopic) != 0 {
		env.KafkaTopic = envKafkaTopic
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	if len(envRecalcMode) != 0 {
		env.RecalcMode = envRecalcMode
	}

	if len(envRepairWorkers) != 0 {
		if workers, err := strconv.Atoi(envRepairWorkers); err == nil && workers > 0 {
			env.RepairWorkers = workers
		}
	}

	return &env, nil
}

// PostgresURL builds the connection string used by the postgres driver and
// the migration runner.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
