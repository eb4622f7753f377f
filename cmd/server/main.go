package main // Entry point package

import (
	"context"
	"log" // Logging library
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/hello-http/internal/config" // Internal config loader
	"github.com/iliyamo/hello-http/internal/router" // Internal router setup
	"github.com/labstack/echo/v4"                   // Echo web framework
)

// shutdownTimeout bounds how long in-flight exchanges may drain after
// SIGINT/SIGTERM before the process gives up and exits non-zero.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()     // Load environment config
	e := echo.New()          // Create Echo instance
	e.HideBanner = true      // Startup logging is ours, not the framework's
	e.HidePort = true
	router.RegisterRoutes(e) // Register application routes

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		// Start blocks until Shutdown is called or the listener fails.
		// A bind failure (port already in use) is unrecoverable and
		// must exit non-zero with a diagnostic.
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Block until asked to stop, then drain in-flight requests.  This
	// is the only path that exits 0.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("server stopped")
}
