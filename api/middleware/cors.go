package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Register UIs run either on the terminal itself or on the shop LAN.
var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev
	"http://localhost:8080",
	"http://127.0.0.1:8080",
}

// CORS returns middleware that applies the register UI origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
