package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/security"
)

// operator-token issues an access token for a front-desk operator.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	operatorID := flag.String("operator", "", "Operator id to embed in the token")
	name := flag.String("name", "", "Operator display name")
	roles := flag.String("roles", "front_desk", "Comma-separated roles")
	flag.Parse()

	if *operatorID == "" {
		fmt.Fprintln(os.Stderr, "usage: operator-token -operator <id> [-name <name>] [-roles a,b] [-config path]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitializeWithWriter(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	expiry := time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
	tm := security.NewTokenManager(cfg.JWT.Secret, expiry)

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	token, err := tm.GenerateAccessToken(*operatorID, *name, roleList)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	logger.Info("Issued operator token", "operator_id", *operatorID, "expires_in", expiry.String())
	fmt.Println(token)
}
