// Command server runs the HTTP API.
package main

import (
	"context"
	"log"

	"github.com/modulearn/backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
