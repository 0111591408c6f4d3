// File: cmd/token/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"job-tracker-api/internal/config"
	"job-tracker-api/internal/infra/api"
)

// Prints a bearer token for -user, signed with the configured secret.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	userID := flag.String("user", "", "user id to put in the token subject")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	tok, err := api.NewAuthManager(cfg.Auth).Mint(*userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mint: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
