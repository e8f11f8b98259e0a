package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"v2parser/internal/config"
	"v2parser/internal/logger"
	"v2parser/internal/xray"

	"github.com/spf13/cobra"
)

var cfgFile string
var verbose bool
var logFile string

var (
	socksPort   uint16
	httpPort    uint16
	getMetadata bool
	runMode     bool
	embedded    bool
	checkConfig bool
	xrayBinary  string
)

var rootCmd = &cobra.Command{
	Use:     "v2parser <uri>",
	Short:   "Parses V2ray URI and generates JSON config for xray",
	Long:    `Converts a vless, vmess, trojan, ss or socks share link into an xray-core client config and prints it. With --run the config is handed to xray-core until Ctrl+C.`,
	Version: "0.3.1",
	Args:    cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, logFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			logger.Log.Fatalf("Error loading config: %v", err)
		}
		applyFlags(cmd, cfg)

		uri := args[0]

		if getMetadata {
			meta, err := xray.GenerateMetadataJSON(uri)
			if err != nil {
				logger.Log.Fatalf("Error parsing link: %v", err)
			}
			fmt.Print(meta)
			return
		}

		jsonConfig, err := xray.GenerateJSON(uri, xray.InboundOptions{
			SocksPort: cfg.SocksPort(),
			HTTPPort:  cfg.HTTPPort(),
		})
		if err != nil {
			logger.Log.Fatalf("Error parsing link: %v", err)
		}

		if cfg.Check {
			if err := xray.Check(jsonConfig); err != nil {
				logger.Log.Fatalf("Config check failed: %v", err)
			}
			logger.Log.Debug("Config accepted by xray-core")
		}

		if !runMode {
			fmt.Println(jsonConfig)
			return
		}

		if err := runEngine(cfg.Engine, jsonConfig); err != nil {
			logger.Sync()
			os.Exit(1)
		}
	},
}

// applyFlags lets explicitly set flags override the settings file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("socksport") {
		cfg.Inbounds.SocksPort = socksPort
	}
	if flags.Changed("httpport") {
		cfg.Inbounds.HTTPPort = httpPort
	}
	if flags.Changed("xray-binary") {
		cfg.Engine.Binary = xrayBinary
	}
	if embedded {
		cfg.Engine.Mode = config.EngineEmbedded
	}
	if checkConfig {
		cfg.Check = true
	}
}

// runEngine starts xray-core and blocks until a shutdown signal or engine exit.
func runEngine(cfg config.EngineConfig, jsonConfig string) error {
	engine := xray.NewEngine(cfg)
	if err := engine.Start(jsonConfig); err != nil {
		logger.Log.Errorf("Failed to start xray-core: %v", err)
		return err
	}
	logger.Log.Info("xray-core started successfully. Press Ctrl+C to stop.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var exitErr error
	select {
	case <-ctx.Done():
		logger.Log.Info("Received shutdown signal, stopping...")
	case err := <-engine.Done():
		exitErr = fmt.Errorf("xray-core exited unexpectedly: %v", err)
		logger.Log.Error(exitErr)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.StopTimeout+time.Second)
	defer cancel()
	if err := engine.Stop(stopCtx); err != nil {
		logger.Log.Errorf("Error stopping xray-core: %v", err)
		return err
	}
	logger.Log.Info("xray-core stopped successfully.")
	return exitErr
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is ./"+config.DefaultPath+", optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr (overwrites file)")

	rootCmd.Flags().Uint16Var(&socksPort, "socksport", 0, "Optional SOCKS5 proxy port for inbound (0 means no SOCKS listener)")
	rootCmd.Flags().Uint16Var(&httpPort, "httpport", 0, "Optional HTTP proxy port for inbound (0 means no HTTP listener)")
	rootCmd.Flags().BoolVar(&getMetadata, "get-metadata", false, "Only print config meta data")
	rootCmd.Flags().BoolVar(&runMode, "run", false, "Run xray-core with the generated config")
	rootCmd.Flags().StringVar(&xrayBinary, "xray-binary", "", "Path to xray-core binary (default: xray-core from PATH)")
	rootCmd.Flags().BoolVar(&embedded, "embedded", false, "With --run, run xray-core in-process instead of spawning a binary")
	rootCmd.Flags().BoolVar(&checkConfig, "check", false, "Validate the generated config with xray-core's loader")
}
