package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/retropy/pycforge"
)

// main is a thin boundary: it canonicalizes the arguments, delegates to
// the orchestrator, and maps the outcome to the process exit status.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	useContainers := false
	if len(args) > 0 && args[0] == "-container" {
		useContainers = true
		args = args[1:]
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: pycforge [-container] <file> <version>...")
	}

	input, versions := args[0], args[1:]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file %s: %w", input, err)
	}

	cfg := &pycforge.Config{WorkRoot: workRoot()}
	orch := pycforge.NewOrchestrator(cfg)
	if err := orch.LoadVersionOverrides(filepath.Join(cfg.WorkRoot, "versions.hcl")); err != nil {
		return err
	}

	if err := orch.Preflight(useContainers); err != nil {
		return err
	}

	results, err := orch.Run(context.Background(), input, versions, useContainers)
	if err != nil {
		return err
	}
	if pycforge.Failed(results) {
		return fmt.Errorf("one or more versions failed")
	}
	return nil
}

func workRoot() string {
	if root := os.Getenv("PYCFORGE_ROOT"); root != "" {
		return root
	}
	return "."
}
