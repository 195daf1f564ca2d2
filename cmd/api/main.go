package main

import (
	"errors"
	"log"
	"net/http"

	"PeopleDesk-backend/internal/server"
)

// @title           PeopleDesk API
// @version         1.0
// @description     HR management backend with a public career portal, application review, employee records, payroll and attendance tracking.

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	srv := server.NewServer()

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server stopped: %s", err)
	}
}
