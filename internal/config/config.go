// Package config loads tabwatch configuration from the environment and
// an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/synthgrid/tabwatch/internal/monitor"
)

// Config holds all configuration values.
type Config struct {
	// Generation stream endpoint
	StreamURL string

	// Monitoring engine
	HistorySize int
	AgentsFile  string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		StreamURL: getEnv("TABWATCH_STREAM_URL", "ws://localhost:8585/stream"),

		HistorySize: getEnvInt("TABWATCH_HISTORY_SIZE", monitor.DefaultCapacity),
		AgentsFile:  getEnv("TABWATCH_AGENTS_FILE", ""),

		LogFile:  getEnv("TABWATCH_LOG_FILE", "/tmp/tabwatch.log"),
		LogLevel: parseLogLevel(getEnv("TABWATCH_LOG_LEVEL", "INFO")),
	}
}

// agentsFile is the YAML shape of an agent roster override.
type agentsFile struct {
	Agents []monitor.AgentSpec `yaml:"agents"`
}

// Agents returns the agent roster: the YAML file when configured,
// otherwise the built-in default roster.
func (c Config) Agents() ([]monitor.AgentSpec, error) {
	if c.AgentsFile == "" {
		return monitor.DefaultAgents(), nil
	}
	data, err := os.ReadFile(c.AgentsFile)
	if err != nil {
		return nil, fmt.Errorf("read agents file: %w", err)
	}
	var f agentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse agents file: %w", err)
	}
	if len(f.Agents) == 0 {
		return nil, fmt.Errorf("agents file %s declares no agents", c.AgentsFile)
	}
	// Aliases are matched case-insensitively against lowered text.
	for i := range f.Agents {
		for j, alias := range f.Agents[i].Aliases {
			f.Agents[i].Aliases[j] = strings.ToLower(alias)
		}
	}
	return f.Agents, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
