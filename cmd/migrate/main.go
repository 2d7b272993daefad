// Command migrate applies the embedded schema migrations.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file found, using system environment variables")
	}

	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
