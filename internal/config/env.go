package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "YAMLFIXER_"

// ApplyEnv overlays YAMLFIXER_* environment variables.
func (c *Config) ApplyEnv() error {
	var err error

	if c.Fixer.IndentUnit, err = getEnvAsInt("INDENT", c.Fixer.IndentUnit); err != nil {
		return err
	}

	if c.Fixer.Aggressive, err = getEnvAsBool("AGGRESSIVE", c.Fixer.Aggressive); err != nil {
		return err
	}

	if c.Fixer.ConfidenceThreshold, err = getEnvAsFloat("THRESHOLD", c.Fixer.ConfidenceThreshold); err != nil {
		return err
	}

	if c.Fixer.MaxIterations, err = getEnvAsInt("MAX_ITERATIONS", c.Fixer.MaxIterations); err != nil {
		return err
	}

	if c.Workspace.Jobs, err = getEnvAsInt("JOBS", c.Workspace.Jobs); err != nil {
		return err
	}

	c.Server.Addr = getEnv("ADDR", c.Server.Addr)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	if patterns := getEnv("PATTERNS", ""); patterns != "" {
		c.Workspace.Patterns = strings.Split(patterns, ",")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid integer in %s%s: %w", EnvPrefix, key, err)
	}

	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid number in %s%s: %w", EnvPrefix, key, err)
	}

	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid boolean in %s%s: %w", EnvPrefix, key, err)
	}

	return value, nil
}
