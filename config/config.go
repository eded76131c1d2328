package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"lottosim/database"
)

// PrizePolicy selects how lotto tiers are paid once the match counts are
// known. The strict policy pays the fixed tier prize deterministically; the
// weighted policy additionally gates each tier behind its real-world
// drawing probability.
type PrizePolicy string

const (
	PrizePolicyStrict   PrizePolicy = "strict"
	PrizePolicyWeighted PrizePolicy = "weighted"
)

// Config holds all simulator configuration
type Config struct {
	// Database configuration. When DatabaseURL is empty the simulator runs
	// against the in-memory ticket store.
	DatabaseURL  string
	DatabaseName string

	// Ticket prices per purchase unit
	LottoTicketPrice   int64
	ScratchTicketPrice int64
	PensionTicketPrice int64

	// Batch purchase tuning. Requests above BatchThreshold are processed in
	// chunks of BatchChunkSize with progress reporting between chunks.
	BatchThreshold int
	BatchChunkSize int

	// Prize policy for lotto scoring
	PrizePolicy PrizePolicy

	// HTTP server listen address
	ListenAddr string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// UsesDatabase reports whether the simulator persists tickets to Postgres
// rather than the in-memory store.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// TicketPrice returns the unit price for one purchase of the given game.
func (c *Config) TicketPrice(game string) int64 {
	switch game {
	case "lotto645":
		return c.LottoTicketPrice
	case "speetto1000":
		return c.ScratchTicketPrice
	case "pension720":
		return c.PensionTicketPrice
	}
	return 0
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Ticket prices with defaults
		LottoTicketPrice:   getEnvInt64("LOTTO_TICKET_PRICE", 1000),
		ScratchTicketPrice: getEnvInt64("SCRATCH_TICKET_PRICE", 1000),
		PensionTicketPrice: getEnvInt64("PENSION_TICKET_PRICE", 720),

		// Batch tuning
		BatchThreshold: getEnvInt("BATCH_THRESHOLD", 10),
		BatchChunkSize: getEnvInt("BATCH_CHUNK_SIZE", 50),

		PrizePolicy: PrizePolicy(getEnvWithDefault("PRIZE_POLICY", string(PrizePolicyStrict))),

		ListenAddr: getEnvWithDefault("LISTEN_ADDR", ":8080"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	switch config.PrizePolicy {
	case PrizePolicyStrict, PrizePolicyWeighted:
	default:
		return nil, fmt.Errorf("PRIZE_POLICY must be %q or %q", PrizePolicyStrict, PrizePolicyWeighted)
	}

	if config.BatchChunkSize <= 0 {
		return nil, fmt.Errorf("BATCH_CHUNK_SIZE must be positive")
	}
	if config.BatchThreshold < 0 {
		return nil, fmt.Errorf("BATCH_THRESHOLD cannot be negative")
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:        "test",
		LottoTicketPrice:   1000,
		ScratchTicketPrice: 1000,
		PensionTicketPrice: 720,
		BatchThreshold:     10,
		BatchChunkSize:     50,
		PrizePolicy:        PrizePolicyStrict,
	}
}
