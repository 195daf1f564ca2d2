package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/notifier"
	"PeopleDesk-backend/internal/storage"
)

// MyServer bundles the database instance, blob storage client and outbound
// notifiers that route handlers depend on.
type MyServer struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
	CRM     *notifier.CRMNotifier
	Chat    *notifier.TelegramNotifier
}

// NewServer construct new http.Server instance with all dependencies wired
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	store, err := storage.NewCloudStorageClient(os.Getenv("STORAGE_BUCKET"))
	if err != nil {
		log.Fatalf("Storage client failed to initialize: %s", err)
	}

	s := &MyServer{
		DB:      db,
		Storage: store,
		CRM:     notifier.NewCRMNotifier(),
		Chat:    notifier.NewTelegramNotifier(),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
