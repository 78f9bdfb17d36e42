// Command admintoken prints a signed bearer token for the admin endpoints,
// using ADMIN_JWT_SECRET from the environment or .env file.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"starline-salvage/internal/auth"
	"starline-salvage/internal/shared/config"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to ADMIN_TOKEN_EXPIRATION)")
	flag.Parse()

	if err := config.Init(); err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}
	cfg := config.GlobalConfig
	if !cfg.AdminEnabled() {
		log.Fatal("ADMIN_JWT_SECRET is not set")
	}

	lifetime := cfg.Admin.TokenExpiration
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.GenerateToken(cfg.Admin.JWTSecret, *subject, auth.RoleAdmin, lifetime, time.Now())
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
