package utils

import (
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	godotenv.Load()
}

func ServicePort() string {
	port := os.Getenv("SLOT_PORT")
	if port == "" {
		port = "8080"
	}
	return port
}
