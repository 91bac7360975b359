package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string // archive dir for imported roster CSVs

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOrigins []string

	// Solver tuning.
	SolverTimeLimitSec int // 0 = no limit

	// Roster-import defaults (per-course input documents built from CSV).
	DefaultProjectCapacity int
	MinTeamSize            int
	MaxSectionsPerTeam     int
	TeamSizeTarget         int
	SwapPasses             int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:     addr,
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),

		AdminUser: envOr("ADMIN_USER", "admin"),
		// bcrypt("change-me"); override in any real deployment
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),

		SolverTimeLimitSec: envInt("SOLVER_TIME_LIMIT_SEC", 60),

		DefaultProjectCapacity: envInt("DEFAULT_PROJECT_CAPACITY", 24),
		MinTeamSize:            envInt("MIN_TEAM_SIZE", 4),
		MaxSectionsPerTeam:     envInt("MAX_SECTIONS_PER_TEAM", 2),
		TeamSizeTarget:         envInt("TEAM_SIZE_TARGET", 8),
		SwapPasses:             envInt("SWAP_PASSES", 2),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func csvOr(k, def string) []string {
	raw := envOr(k, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
