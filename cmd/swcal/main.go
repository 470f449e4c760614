package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"swcal/internal/config"
	appLog "swcal/internal/log"
	"swcal/internal/pipeline"
	"swcal/internal/web"
)

// flagConfig holds CLI flag values; non-empty flags override the config file.
type flagConfig struct {
	configPath string
	account    string
	includeDLC bool
	maxPages   int
	outputDir  string
	cronMode   bool
	debug      bool
}

func main() {
	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	// A local .env can carry SWCAL_ACCOUNT for setups that keep the
	// account id out of the config file.
	_ = godotenv.Load()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	if flags.account != "" {
		conf.Account = flags.account
	}
	if conf.Account == "" {
		conf.Account = os.Getenv("SWCAL_ACCOUNT")
	}
	if flags.includeDLC {
		conf.IncludeDLC = true
	}
	if flags.maxPages > 0 {
		conf.MaxPages = flags.maxPages
	}
	if flags.outputDir != "" {
		conf.OutputDir = flags.outputDir
	}

	if err := conf.Validate(); err != nil {
		appLog.Error("invalid config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	appLog.Info("swcal starting",
		"account", conf.Account,
		"include_dlc", conf.IncludeDLC,
		"max_pages", conf.MaxPages,
		"locale", conf.Locale,
		"output_dir", conf.OutputDir,
		"cron_mode", flags.cronMode,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	p := pipeline.New(conf)

	if !flags.cronMode {
		if err := p.Run(ctx, time.Now().UTC()); err != nil {
			appLog.Error("run failed", err)
			os.Exit(1)
		}
		return
	}

	// Daemon mode: run once now, then on the configured schedule, and serve
	// the artifacts over HTTP so clients can subscribe to the feed.
	run := func() {
		if err := p.Run(ctx, time.Now().UTC()); err != nil {
			appLog.Error("scheduled run failed", err)
		}
	}
	run()

	c := cron.New()
	if _, err := c.AddFunc(conf.RefreshCron, run); err != nil {
		appLog.Error("invalid refresh schedule", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	if err := web.Serve(ctx, conf); err != nil {
		appLog.Error("HTTP server failed", err, "listen", conf.Listen)
		os.Exit(1)
	}

	appLog.Info("swcal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "swcal.yaml", "Path to config file")
	flag.StringVar(&cfg.account, "id", "", "Steam account: steamid64 or vanity name (overrides config)")
	flag.BoolVar(&cfg.includeDLC, "include-dlc", false, "Include DLC items")
	flag.IntVar(&cfg.maxPages, "max-pages", 0, "Wishlist page limit, 100 items per page (overrides config)")
	flag.StringVar(&cfg.outputDir, "output", "", "Output directory (overrides config)")
	flag.BoolVar(&cfg.cronMode, "cron", false, "Run on the configured schedule and serve artifacts over HTTP")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
