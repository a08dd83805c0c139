// ABOUTME: Entry point for the admin console server.
// ABOUTME: Wires store, identity, API, guard, and console with CLI commands.

package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fernando-bedoya/adminconsole/internal/api"
	"github.com/fernando-bedoya/adminconsole/internal/console"
	"github.com/fernando-bedoya/adminconsole/internal/guard"
	"github.com/fernando-bedoya/adminconsole/internal/identity"
	"github.com/fernando-bedoya/adminconsole/internal/logging"
	"github.com/fernando-bedoya/adminconsole/internal/resource"
	"github.com/fernando-bedoya/adminconsole/internal/seed"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

const tokenTTL = 8 * time.Hour

var (
	port   string
	dbPath string
)

func main() {
	// Env first; flags override.
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "adminconsole",
		Short: "Admin console: user, role, and permission management",
		Long: `A single-binary admin console for account management.

The binary hosts:
  • The REST resource API under /api (users, roles, permissions,
    user-roles, role-permissions, sessions, passwords,
    security-questions, answers, devices, digital-signatures)
  • The server-rendered console at /console (sign-in required)
  • Health check at /healthz

Quick Start:
  adminconsole seed     # Generate demo data (admin@example.com / admin-console-1)
  adminconsole serve    # Start server on port 9000
  adminconsole reset    # Wipe and reseed the database`,
	}

	defaultDBPath := getEnv("ADMIN_DB_PATH", "./adminconsole.db")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the admin console server on the specified port.

Environment Variables:
  ADMIN_PORT         Server port (default: 9000)
  ADMIN_DB_PATH      SQLite database path (default: ./adminconsole.db)
  ADMIN_SESSION_KEY  Cookie session signing key (random per run when unset)
  ADMIN_JWT_SECRET   Token signing secret (random per run when unset)
  ADMIN_API_BASE     API base the console talks to (default: own /api)
  OPENAI_API_KEY     Enable AI-generated seed data`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", getEnv("ADMIN_PORT", "9000"), "Port to listen on")
	serveCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo data",
		Long: `Seed the database with demo accounts, roles, permissions, and security
questions. Set OPENAI_API_KEY to generate the data with AI; otherwise a
static data set is used.

A fixed bootstrap account is always created:
  admin@example.com / admin-console-1

Note: Seed is not idempotent. Use 'adminconsole reset' to clear data first.`,
		RunE: runSeed,
	}
	seedCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database (wipe and reseed)",
		Long: `Delete the database file, create a fresh one, and seed it.

Warning: This permanently deletes all data in the database!`,
		RunE: runReset,
	}
	resetCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	rootCmd.AddCommand(serveCmd, seedCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cleanPath, err := validateDBPath(dbPath)
	if err != nil {
		return err
	}

	srv, err := newServer(cleanPath, "http://localhost:"+port+"/api")
	if err != nil {
		return err
	}

	addr := ":" + port
	log.Printf("Admin console listening on %s", addr)
	log.Printf("Database: %s", cleanPath)
	log.Printf("Console:  http://localhost:%s/console", port)
	return http.ListenAndServe(addr, srv)
}

func newServer(dbPath, defaultAPIBase string) (http.Handler, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	jwtSecret := secretFromEnv("ADMIN_JWT_SECRET")
	sessionKey := secretFromEnv("ADMIN_SESSION_KEY")

	svc := identity.NewService(s, jwtSecret, tokenTTL)

	sessionStore := sessions.NewCookieStore(sessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	g := guard.New(sessionStore, svc)

	apiBase := getEnv("ADMIN_API_BASE", defaultAPIBase)
	client := resource.NewClient(apiBase, nil)

	con := console.New(client, g, svc, console.Screens())

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, console.BasePath, http.StatusFound)
	})

	r.Group(func(r chi.Router) {
		r.Use(logging.Middleware(s))
		api.NewHandlers(s, svc).RegisterRoutes(r)
	})
	con.RegisterAuthRoutes(r)

	// Logging sits inside the guard so console entries carry the operator.
	r.Group(func(r chi.Router) {
		r.Use(g.Middleware)
		r.Use(logging.Middleware(s))
		con.RegisterRoutes(r)
	})

	return r, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cleanPath, err := validateDBPath(dbPath)
	if err != nil {
		return err
	}

	s, err := store.New(cleanPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return seedData(s)
}

func runReset(cmd *cobra.Command, args []string) error {
	cleanPath, err := validateDBPath(dbPath)
	if err != nil {
		return err
	}

	// Remove existing database - ignore if file doesn't exist
	if err := os.Remove(cleanPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing database: %w", err)
	}

	s, err := store.New(cleanPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return seedData(s)
}

func seedData(s *store.Store) error {
	log.Println("Seeding database with demo data...")

	svc := identity.NewService(s, secretFromEnv("ADMIN_JWT_SECRET"), tokenTTL)

	gen := seed.NewGenerator()
	data, err := gen.Generate(context.Background(), 12, 5, 6)
	if err != nil {
		return err
	}

	if err := seed.Apply(s, svc, data); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			log.Println("Note: Database already contains seed data. Use 'adminconsole reset' to clear and reseed.")
		}
		return err
	}

	log.Printf("Sign in with %s / %s", seed.AdminEmail, seed.AdminPassword)
	return nil
}

// validateDBPath rejects empty and traversal-prone paths.
func validateDBPath(path string) (string, error) {
	cleanPath := filepath.Clean(strings.TrimSpace(path))
	if cleanPath == "" || cleanPath == "." || cleanPath == "/" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}
	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("database path cannot contain '..'")
	}
	return cleanPath, nil
}

// secretFromEnv reads a signing secret from the environment, generating a
// random per-process one when unset. Random secrets invalidate sessions and
// tokens on restart; set the env var for anything beyond local use.
func secretFromEnv(key string) []byte {
	if v := os.Getenv(key); v != "" {
		return []byte(v)
	}
	log.Printf("Warning: %s not set, using a random per-run secret", key)
	secret := make([]byte, 32)
	rand.Read(secret)
	return secret
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
