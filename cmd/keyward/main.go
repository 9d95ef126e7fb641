package main

import (
	"os"

	"github.com/joho/godotenv"

	"keyward/cmd/keyward/commands"
)

func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			_ = godotenv.Load(filename)
		}
	}
}

func main() {
	loadEnv(".env.local", ".env")
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
