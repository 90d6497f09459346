package main

import (
	"github.com/joho/godotenv"
	"github.com/nikogura/career-kit/cmd"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	_ = godotenv.Load()
	cmd.Execute()
}
