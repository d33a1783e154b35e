// Command token mints a signed bearer token for local testing of role-gated routes.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"pos/config"
	"pos/utils"
)

func main() {
	role := flag.String("role", "manager", "role claim: manager, cashier, customer or kitchen")
	subject := flag.String("sub", "dev", "subject claim")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	token, err := utils.GenerateToken(cfg.JWTSecret, *role, *subject, *ttl)
	if err != nil {
		log.Fatalf("JWT_SECRET must be set: %v", err)
	}
	fmt.Println(token)
}
