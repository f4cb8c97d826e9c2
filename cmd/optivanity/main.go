package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/econia-labs/optivanity/internal/config"
	"github.com/econia-labs/optivanity/internal/crypto"
	logpkg "github.com/econia-labs/optivanity/internal/logger"
	"github.com/econia-labs/optivanity/pkg/search"
	"github.com/econia-labs/optivanity/pkg/types"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "optivanity",
		Short: "Hyper-parallelized vanity address generator for the Aptos blockchain",
		Long: `A command line utility for generating vanity Aptos account addresses.
It brute-force searches Ed25519 keypairs whose standard account address
(or the multisig account address derived from it) matches the requested
hex prefix and/or suffix. Each additional pattern character slows the
search by 16x.`,
		Run: runSearch,
	}

	rootCmd.Flags().StringVarP(&cfg.Prefix, "prefix", "p", "", "Address prefix to match (hex, no leading 0x)")
	rootCmd.Flags().StringVarP(&cfg.Suffix, "suffix", "s", "", "Address suffix to match (hex)")
	rootCmd.Flags().BoolVarP(&cfg.Multisig, "multisig", "m", false, "Search for multisig account address(es)")
	rootCmd.Flags().Uint64VarP(&cfg.Count, "count", "c", 1, "Number of vanity accounts to generate")
	rootCmd.Flags().BoolVarP(&cfg.Endless, "endless", "e", false, "Keep searching until interrupted, ignoring --count")
	rootCmd.Flags().IntVarP(&cfg.Threads, "threads", "t", runtime.NumCPU(), "Number of search threads (at most the available cores)")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log search progress periodically")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stderr)")
	rootCmd.Flags().IntVarP(&cfg.StatsInterval, "stats-interval", "i", 5, "Progress logging interval in seconds")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSearch(cmd *cobra.Command, args []string) {
	// Configuration errors surface here, before any worker starts.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogging()

	searcher, err := search.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Ctrl+C cancels the search: the terminator for endless mode, an
	// early abort otherwise.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Printf("Starting search at %s", time.Now().Format(time.RFC1123))
	logger.Printf("Target: %s, threads: %d", cfg.TargetDescription(), cfg.Threads)

	results, err := searcher.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for result := range results {
		printResult(result)
	}
	if err := searcher.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stats := searcher.Stats()
	printSummary(stats)
}

// printResult renders a match as it arrives, in the same shape wallets
// expect for import: 0x-prefixed lowercase hex.
func printResult(result types.FoundResult) {
	if result.Multisig != nil {
		pterm.Printf("Multisig account address: %s\n", pterm.LightCyan(result.Multisig.Hex()))
	}
	pterm.Printf("Standard account address: %s\n", pterm.LightCyan(result.Address.Hex()))
	pterm.Printf("Private key:              %s\n\n", pterm.LightYellow(crypto.PrivateKeyHex(result.Key.PrivateKey)))
}

func printSummary(stats types.Stats) {
	pterm.Printf("Elapsed time:         %v\n", stats.Elapsed.Round(time.Millisecond))
	pterm.Printf("Candidates generated: %d (%.0f addresses/sec)\n", stats.Attempts, stats.Rate())
}

func setupLogging() {
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logger = logpkg.NewWriter(file, cfg.Verbose)
	} else {
		logger = logpkg.New(cfg.Verbose)
	}
}
