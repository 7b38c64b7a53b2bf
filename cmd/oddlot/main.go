package main

import (
	"os"

	"github.com/wonny/oddlot/cmd/oddlot/commands"
)

// main is the entry point for the oddlot CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/oddlot [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
