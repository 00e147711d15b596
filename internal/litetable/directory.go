package litetable

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	litetableDir   = ".litetable"
	configFileName = "litetable.conf"
)

// GetLitetableDir returns the path to the LiteTable directory in the user's home directory.
func GetLitetableDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, litetableDir), nil
}

// DefaultConfigPath is where the bulk reader looks for litetable.conf when no path is given.
func DefaultConfigPath() (string, error) {
	dir, err := GetLitetableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
