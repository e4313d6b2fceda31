package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load читает .env (если он есть) и применяет флаги командной строки поверх окружения.
func Load(fileExists bool) error {
	if fileExists {
		if err := godotenv.Load(); err != nil {
			return err
		}
	}

	var portFlag, storageFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.StringVar(&storageFlag, "storage", "", "Storage driver: postgres or memory (overrides STORAGE_DRIVER)")
	flag.Parse()

	overrides := map[string]string{
		"PORT":           portFlag,
		"STORAGE_DRIVER": storageFlag,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", key, err)
		}
	}
	return nil
}
