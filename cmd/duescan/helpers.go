package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/duescan/duescan/internal/config"
	"github.com/duescan/duescan/internal/model"
	"github.com/duescan/duescan/internal/storage"
)

const defaultSession = "default"

func openStore() (*storage.SQLiteStore, error) {
	path := viper.GetString("database.path")
	if path == "" {
		path = config.DefaultDatabasePath()
	}
	store, err := storage.NewSQLiteStore(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	return store, nil
}

func configuredTimezone(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if tz := viper.GetString("extract.timezone"); tz != "" {
		return tz
	}
	return "UTC"
}

func configuredLocale(flagValue string) (model.DateLocale, error) {
	if flagValue == "" {
		flagValue = viper.GetString("extract.locale")
	}
	if flagValue == "" {
		return model.DateLocaleUS, nil
	}
	return model.ParseDateLocale(flagValue)
}

// readInput returns the pasted text: the named file when given, stdin
// otherwise.
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0]) // #nosec G304 -- user-supplied input path
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
