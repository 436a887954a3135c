package cli

import (
	"context"
	"fmt"

	"github.com/asteroid-belt/dishdeck/internal/config"
	"github.com/asteroid-belt/dishdeck/internal/db"
	"github.com/asteroid-belt/dishdeck/internal/log"
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveBackend string
	serveOrigins []string
	serveRPS     float64
	serveSeed    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dish server",
	Long: `Run the dish server that holds the public dish collection.

The server answers the deck, filter and publish requests of dishdeck
clients and exposes Prometheus metrics on /metrics.

Backends:
  sqlite     the local dishdeck database (default)
  firestore  the "dishes" collection of DISHDECK_FIRESTORE_PROJECT

Examples:
  # Serve locally with the sample dishes
  dishdeck serve --seed

  # Serve from Firestore behind a web front end
  dishdeck serve --backend firestore --origin https://dishdeck.example`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from DISHDECK_LISTEN_ADDR or :8080)")
	serveCmd.Flags().StringVar(&serveBackend, "backend", "", "Storage backend: sqlite or firestore")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "origin", nil, "Allowed CORS origin (repeatable)")
	serveCmd.Flags().Float64Var(&serveRPS, "rps", -1, "Global requests per second (0 disables limiting)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Add the sample dishes when the collection is empty")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return trackCLIError("serve", fmt.Errorf("load config: %w", err))
	}
	applyServeFlags(&cfg.Server)

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return trackCLIError("serve", err)
	}
	defer closeRepo()

	if serveSeed {
		if err := seedRepository(ctx, repo); err != nil {
			return trackCLIError("serve", fmt.Errorf("seed dishes: %w", err))
		}
	}

	srv := server.New(repo, server.Options{
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
	})
	fmt.Printf("Dish server (%s) listening on %s\n", cfg.Server.Backend, cfg.Server.Addr)
	return trackCLIError("serve", srv.ListenAndServe(ctx, cfg.Server.Addr))
}

// applyServeFlags lets explicit flags override the environment.
func applyServeFlags(sc *config.ServerConfig) {
	if serveAddr != "" {
		sc.Addr = serveAddr
	}
	if serveBackend != "" {
		sc.Backend = serveBackend
	}
	if len(serveOrigins) > 0 {
		sc.AllowedOrigins = serveOrigins
	}
	if serveRPS >= 0 {
		sc.RequestsPerSecond = serveRPS
	}
}

func openRepository(ctx context.Context, cfg *config.Config) (server.Repository, func(), error) {
	switch cfg.Server.Backend {
	case config.BackendSQLite, "":
		paths := config.GetPaths(cfg)
		database, err := db.New(db.DefaultConfig(paths.Database))
		if err != nil {
			return nil, nil, fmt.Errorf("initialize database: %w", err)
		}
		return server.NewSQLRepository(database), func() { _ = database.Close() }, nil

	case config.BackendFirestore:
		if cfg.Server.FirestoreProject == "" {
			return nil, nil, fmt.Errorf("firestore backend needs DISHDECK_FIRESTORE_PROJECT (invalid configuration)")
		}
		repo, err := server.NewFirestoreRepository(ctx, cfg.Server.FirestoreProject)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("invalid server backend %q (supported: sqlite, firestore)", cfg.Server.Backend)
	}
}

// seedRepository adds the sample dishes to an empty collection.
func seedRepository(ctx context.Context, repo server.Repository) error {
	existing, err := repo.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("collection holds %d dishes, not seeding", len(existing))
		return nil
	}
	for _, d := range models.SampleDishes() {
		d.Privacy = models.PrivacyPublic
		if err := repo.Create(ctx, &d); err != nil {
			return err
		}
	}
	log.Printf("seeded %d sample dishes", len(models.SampleDishes()))
	return nil
}
