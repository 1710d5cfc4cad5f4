// Command devtoken mints an access token for local testing.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jurisai/contractvault/internal/config"
	"github.com/jurisai/contractvault/internal/token"
)

func main() {
	uploader := flag.String("uploader", "", "uploader id (random when empty)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	uploaderID := uuid.New()
	if *uploader != "" {
		uploaderID, err = uuid.Parse(*uploader)
		if err != nil {
			log.Fatalf("invalid uploader id: %v", err)
		}
	}

	tok, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL).GenerateAccessToken(uploaderID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Printf("uploader: %s\ntoken: %s\n", uploaderID, tok)
}
