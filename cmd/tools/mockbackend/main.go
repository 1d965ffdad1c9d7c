// Command mockbackend serves the order REST API from a local database,
// seeded with fake orders, for developing the admin frontend.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pehlione.com/admin/internal/backend/api"
	"pehlione.com/admin/internal/backend/store"
	"pehlione.com/admin/internal/config"
	"pehlione.com/admin/internal/telemetry"
)

func main() {
	_ = godotenv.Load()
	v := config.New()

	addr := flag.String("addr", v.GetString("BACKEND_ADDR"), "Listen address")
	driver := flag.String("driver", v.GetString("BACKEND_DB_DRIVER"), "Database driver (sqlite, mysql, postgres)")
	dsn := flag.String("dsn", v.GetString("BACKEND_DB_DSN"), "Database DSN (sqlite default: in-memory)")
	seed := flag.Int("seed", v.GetInt("BACKEND_SEED"), "Number of fake orders to create (0 = none)")
	randSeed := flag.Int64("rand", 42, "Faker seed")
	token := flag.String("token", v.GetString("API_TOKEN"), "Required bearer token (empty = no auth)")
	flag.Parse()

	logger := telemetry.NewLogger(os.Stdout, v.GetString("LOG_LEVEL"))

	db, err := store.Open(*driver, *dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	repo := store.NewRepo(db)

	if *seed > 0 {
		created, err := repo.Seed(context.Background(), store.SeedOptions{Count: *seed, Seed: *randSeed, Days: 30})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding: %v\n", err)
			os.Exit(1)
		}
		logger.Info("seeded orders", "count", len(created))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewRouter(repo, api.Config{Token: *token, Logger: logger}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	logger.Info("mock backend listening", "addr", *addr, "driver", db.Dialector.Name(), "auth", *token != "")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		os.Exit(1)
	}
}
