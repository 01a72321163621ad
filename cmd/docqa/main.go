package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/quillstack/docqa/internal/adapters/driving/cli"
)

func main() {
	// Optional: a .env in the working directory supplies OPENAI_API_KEY
	// and friends during development. Absence is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
