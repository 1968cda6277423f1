package cli

import (
	"fmt"
	"sync"

	"github.com/loggrid/loggrid/internal/config"
)

var (
	globalConfig   *config.Config
	globalConfigMu sync.Mutex
)

// loadGlobalConfig loads the configuration once per invocation.
func loadGlobalConfig() error {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	loader := config.NewLoader()
	cfg, err := loader.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	globalConfig = cfg
	return nil
}

// getGlobalConfig returns the loaded configuration, falling back to the
// defaults when a command runs without the root command's setup (tests).
func getGlobalConfig() *config.Config {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = config.DefaultConfig()
	}
	return globalConfig
}
