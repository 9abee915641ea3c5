package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/router"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations, or rebuild the schema from scratch
	if cfg.DBReset {
		err = database.Reset(db)
	} else {
		err = database.Migrate(db)
	}
	if err != nil {
		closeDatabase(db)
		log.Fatalf("Failed to prepare database: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(cfg, db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr, err := start(server)
	if err != nil {
		closeDatabase(db)
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Server listening on %s", server.Addr)

	go func() {
		if err := <-serveErr; err != nil {
			closeDatabase(db)
			log.Fatalf("Server stopped unexpectedly: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(context.Background(), shutdownTimeout, shutdownOperations(server, db))

	exitCode := <-wait
	if exitCode != 0 {
		log.Printf("Shutdown completed with exit code: %d", exitCode)
		os.Exit(exitCode)
	}
	log.Println("Server stopped gracefully")
}

// start binds the listener synchronously so a busy port fails before main
// waits for signals. The returned channel yields the Serve error, or nil once
// the server is shut down.
func start(server *http.Server) (<-chan error, error) {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return nil, err
	}

	serveErr := make(chan error, 1)
	go func() {
		err := server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()
	return serveErr, nil
}

// shutdownOperations stops the HTTP server first; the database is closed
// only after in-flight requests have drained.
func shutdownOperations(server *http.Server, db *gorm.DB) map[string]gfshutdown.Operation {
	httpStopped := make(chan struct{})

	return map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			defer close(httpStopped)
			log.Println("Shutting down server...")
			return server.Shutdown(ctx)
		},
		"database": func(ctx context.Context) error {
			select {
			case <-httpStopped:
			case <-ctx.Done():
			}
			log.Println("Closing database...")
			return database.Close(db)
		},
	}
}

func closeDatabase(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}
