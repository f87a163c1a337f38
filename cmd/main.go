package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"repolens/analyzer"
	"repolens/config"
	"repolens/gitrepo"
	"repolens/logger"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.LogLevel)

	if cfg.RepoInput == "" {
		cfg.RepoInput = prompt("Enter repository URL or local path: ")
	}
	if cfg.RepoInput == "" {
		logger.Fatal("No repository given. Use --repo or answer the prompt.")
	}

	// Record start time
	startTime := time.Now()

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleSignals(cancel)

	repo, err := gitrepo.Open(ctx, cfg.RepoInput, gitrepo.Options{
		CloneDepth:   cfg.CloneDepth,
		CloneTimeout: cfg.CloneTimeout,
	})
	if err != nil {
		if errors.Is(err, gitrepo.ErrAcquisition) {
			logger.Fatalf("Could not acquire repository %s: %v", cfg.RepoInput, err)
		}
		logger.Fatalf("Repository setup failed: %v", err)
	}
	defer repo.Cleanup()

	rep, err := analyzer.Analyze(ctx, repo, cfg)
	if err != nil {
		logger.Fatalf("Analysis failed: %v", err)
	}

	if err := rep.Save(cfg.OutputFileName); err != nil {
		logger.Fatalf("Failed to write %s: %v", cfg.OutputFileName, err)
	}
	rep.PrintSummary(os.Stdout)

	logger.Infof("Analysis completed in %s. Report written to %s.",
		time.Since(startTime).Round(time.Millisecond), cfg.OutputFileName)
}

func prompt(question string) string {
	fmt.Print(question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func handleSignals(cancelFunc context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Interrupt signal received. Shutting down...")
	cancelFunc()
}
