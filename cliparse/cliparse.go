package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	TokenSecret      string
	VoterHashSalt    string
	ArchiveAfterDays int
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("opinionhub", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.ArchiveAfterDays, "archive-after", 0, "Days a completed poll stays before archival")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "token-secret", "", "Bearer token signing secret (prefer env)")
	fs.StringVar(&cfg.VoterHashSalt, "voter-salt", "", "Voter hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8214 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if cfg.ArchiveAfterDays == 0 {
		if daysStr := os.Getenv("ARCHIVE_AFTER_DAYS"); daysStr != "" {
			days, err := strconv.Atoi(daysStr)
			if err != nil || days < 1 {
				return Config{}, errors.New("invalid ARCHIVE_AFTER_DAYS env variable")
			}
			cfg.ArchiveAfterDays = days
		} else {
			cfg.ArchiveAfterDays = 30 // default retention window
		}
	}

	// Secrets - MUST be provided
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("TOKEN_SECRET required")
	}

	if cfg.VoterHashSalt == "" {
		cfg.VoterHashSalt = os.Getenv("VOTER_HASH_SALT")
	}
	if cfg.VoterHashSalt == "" {
		return Config{}, errors.New("VOTER_HASH_SALT required")
	}

	return cfg, nil
}
