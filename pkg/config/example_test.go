package config_test

import (
	"fmt"

	"github.com/wonny/oddlot/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("Forms: %v (max %d)\n", cfg.EDGAR.FormTypes, cfg.EDGAR.MaxResults)
	fmt.Printf("Workers: %d\n", cfg.Scan.Workers)
	fmt.Printf("Notifier: %s\n", cfg.Notify.Provider)
}
