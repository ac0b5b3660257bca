package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/config"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/pipeline"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/server"
	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/util"
)

var (
	configPath = flag.String("config", "", "path to nikos.toml (default: next to the executable)")
	port       = flag.Int("port", 0, "server port (a port set in nikos.toml wins)")
	devMode    = flag.Bool("dev", false, "development mode, no browser launch")
	dataDir    = flag.String("dataDir", "", "data directory (overrides the config file)")

	posPath    = flag.String("pos", "", "batch mode: POS export workbook")
	onlinePath = flag.String("online", "", "batch mode: online ordering workbook")
	manualPath = flag.String("manual", "", "batch mode: TOML file with per-week manual inputs")
	outPath    = flag.String("out", "", "batch mode: unified xlsx output path")
	csvDir     = flag.String("csv", "", "batch mode: directory for csv outputs")
)

func main() {
	flag.Parse()

	cfg, info, err := config.LoadConfigWithInfo(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// Flags override the file, except a port the file set explicitly.
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	log := config.NewLogger(cfg.Log)

	if *posPath != "" || *onlinePath != "" || *manualPath != "" || *outPath != "" || *csvDir != "" {
		runBatch(cfg, log)
		return
	}
	runServer(cfg, log)
}

// runBatch executes the one-shot pipeline: parse, merge, aggregate and
// write every requested artifact.
func runBatch(cfg *config.AppConfig, log *logrus.Logger) {
	result, err := pipeline.Run(pipeline.Options{
		POSPath:    *posPath,
		OnlinePath: *onlinePath,
		ManualPath: *manualPath,
		OutPath:    *outPath,
		CSVDir:     *csvDir,
	}, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("batch run failed")
	}

	fmt.Printf("Processed %d day(s) into %d week(s)\n", result.Days, result.Weeks)
	for _, path := range result.Written {
		fmt.Printf("  wrote %s\n", path)
	}
}

func runServer(cfg *config.AppConfig, log *logrus.Logger) {
	fmt.Println("==========================================")
	fmt.Println("  Sodexo Nikos - weekly sales reporting")
	fmt.Println("==========================================")

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("server init failed")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.Run(addr); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	if !cfg.Server.DevMode {
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("Open %s in your browser\n", url)
		}
	} else {
		fmt.Printf("Dev mode: visit %s\n", url)
	}

	fmt.Println("\nPress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	if err := srv.Close(); err != nil {
		log.WithError(err).Warn("close store")
	}
}
