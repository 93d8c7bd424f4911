package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cafeorder/cafe-client/cmd/cafectl/output"
	"github.com/cafeorder/cafe-client/internal/address"
	"github.com/cafeorder/cafe-client/internal/admincatalog"
	"github.com/cafeorder/cafe-client/internal/adminorders"
	"github.com/cafeorder/cafe-client/internal/cart"
	"github.com/cafeorder/cafe-client/internal/catalog"
	"github.com/cafeorder/cafe-client/internal/orders"
	"github.com/cafeorder/cafe-client/internal/session"
	"github.com/cafeorder/cafe-client/pkg/api"
	"github.com/cafeorder/cafe-client/pkg/config"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/logger"
	"github.com/cafeorder/cafe-client/pkg/metrics"
	"github.com/cafeorder/cafe-client/pkg/redis"
)

var (
	baseURL string
	verbose bool

	cfg             *config.Config
	logg            *logger.Logger
	sessionStore    *session.Store
	catalogAccessor *catalog.Accessor
	cartStore       *cart.Store
	addressStore    *address.Store
	orderStore      *orders.Store
	adminOrderStore *adminorders.Store
	catalogEditor   *admincatalog.Editor
)

var rootCmd = &cobra.Command{
	Use:   "cafectl",
	Short: "Order coffee from the terminal",
	Long: `cafectl is the command line client for the cafe ordering service.

It keeps your cart on disk, your session in a cookie jar, and talks to
the cafe backend for everything else: browsing the menu, managing
addresses, placing orders, and (for staff) running the catalog and the
order queue.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return bootstrap(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logg != nil {
			dump := pkgerrors.Dump(err)
			ctx := logg.WithFields(context.Background(), map[string]any{
				"code":  dump.Code,
				"chain": dump.Chain,
			})
			logg.Debug(ctx, "command failed")
		}
		output.Error("%s", pkgerrors.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (overrides CAFE_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func bootstrap(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logg = logger.New(logger.Options{ServiceName: "cafectl"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	level := logger.ParseLevel(cfg.App.LogLevel)
	if verbose {
		level = logger.ParseLevel("debug")
	}
	logg = logger.New(logger.Options{
		ServiceName: "cafectl",
		Level:       level,
		WarnStack:   cfg.App.LogWarnStack,
	})

	jar, err := api.NewPersistentJar(cookiePath())
	if err != nil {
		return err
	}

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithCookieJar(jar),
		api.WithLogger(logg),
		api.WithMetrics(metrics.NewRequestMetrics(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return err
	}

	sessionStore, err = session.NewStore(client, logg)
	if err != nil {
		return err
	}
	catalogAccessor, err = catalog.NewAccessor(client, logg)
	if err != nil {
		return err
	}
	addressStore, err = address.NewStore(client, logg)
	if err != nil {
		return err
	}
	orderStore, err = orders.NewStore(client, sessionStore, logg)
	if err != nil {
		return err
	}
	adminOrderStore, err = adminorders.NewStore(client, sessionStore, logg)
	if err != nil {
		return err
	}
	catalogEditor, err = admincatalog.NewEditor(client, sessionStore, logg)
	if err != nil {
		return err
	}

	storage, err := cartStorage(ctx)
	if err != nil {
		return err
	}
	cartStore, err = cart.NewStore(ctx, storage, logg)
	if err != nil {
		return err
	}

	sessionStore.Subscribe(func(event session.Event) {
		if event == session.EventLogout {
			addressStore.Reset()
			orderStore.Reset()
			adminOrderStore.Reset()
		}
	})

	if err := sessionStore.Initialize(ctx); err != nil {
		logg.Warn(ctx, fmt.Sprintf("session check failed: %v", err))
	}
	if user, ok := sessionStore.CurrentUser(); ok {
		cmd.SetContext(logg.WithUserEmail(ctx, user.Email))
	}
	return nil
}

func cartStorage(ctx context.Context) (cart.Storage, error) {
	if cfg.Cart.Backend == config.CartBackendRedis {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		owner, err := os.Hostname()
		if err != nil || owner == "" {
			owner = "local"
		}
		return cart.NewRedisStorage(client, client.CartKey(owner), 30*24*time.Hour)
	}

	path := cfg.Cart.StoragePath
	if path == "" {
		path = filepath.Join(configDir(), "cart.json")
	}
	return cart.NewFileStorage(path)
}

func cookiePath() string {
	if cfg.API.CookiePath != "" {
		return cfg.API.CookiePath
	}
	return filepath.Join(configDir(), "cookies.json")
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "cafectl")
}

// requireLogin is the guard shared by commands that only make sense for
// an authenticated user.
func requireLogin() error {
	if !sessionStore.IsAuthenticated() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "you are not logged in, run: cafectl login")
	}
	return nil
}
