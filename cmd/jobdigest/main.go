package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs; CI injects its environment directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
