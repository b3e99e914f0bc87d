package config

import (
	"os"
)

// Summary maintenance strategies. See service.SummaryMaintainer.
const (
	SummaryStrategyRecompute   = "recompute"
	SummaryStrategyIncremental = "incremental"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort string

	// PinValidatorEndpoint is the URL of the external PIN validator that
	// gates business/personal mode switches.
	PinValidatorEndpoint string

	// SummaryStrategy is "recompute" or "incremental".
	SummaryStrategy string

	// CascadeDeleteRecurring controls whether deleting a recurring expense
	// template also deletes its linked payment transactions.
	CascadeDeleteRecurring bool
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:        "localhost",
		PostgresPort:           "5433",
		PostgresDB:             "postgres",
		PostgresUsername:       "postgres",
		PostgresPassword:       "testpassword",
		HTTPPort:               "9446",
		PinValidatorEndpoint:   "http://localhost:9447/pin",
		SummaryStrategy:        SummaryStrategyRecompute,
		CascadeDeleteRecurring: true,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envHTTPPort := os.Getenv("HTTP_PORT")
	envPinValidatorEndpoint := os.Getenv("PIN_VALIDATOR_ENDPOINT")
	envSummaryStrategy := os.Getenv("SUMMARY_STRATEGY")
	envCascadeDelete := os.Getenv("CASCADE_DELETE_RECURRING")

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

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	if len(envPinValidatorEndpoint) != 0 {
		env.PinValidatorEndpoint = envPinValidatorEndpoint
	}

	if envSummaryStrategy == SummaryStrategyIncremental {
		env.SummaryStrategy = SummaryStrategyIncremental
	}

	if envCascadeDelete == "false" {
		env.CascadeDeleteRecurring = false
	}

	return &env, nil
}

// ConnectionString assembles the Postgres DSN used by storage and migrations.
func (c *Config) ConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
