package main

import (
	"github.com/campushub/server/cmd/server/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()
	cmd.Execute()
}
