package main

import (
	"log"

	"github.com/caselens/caselens/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ caselens failed to start: %v", err)
	}
}
