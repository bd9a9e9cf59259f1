/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command entitymeta prints the resolved table settings of every table entry
// in a store configuration.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/suparena/entitymeta"
	"github.com/suparena/entitymeta/config"
	"github.com/suparena/entitymeta/expression"
	"github.com/suparena/entitymeta/internal/logging"
	"github.com/suparena/entitymeta/resolver"
	"github.com/suparena/entitymeta/storagemodels"
)

// tableReport is the resolved view of one table entry.
type tableReport struct {
	Entity          string                     `yaml:"entity"`
	TableName       string                     `yaml:"tableName"`
	Limits          *storagemodels.TableLimits `yaml:"limits,omitempty"`
	Consistency     storagemodels.Consistency  `yaml:"consistency"`
	Durability      storagemodels.Durability   `yaml:"durability"`
	TimeoutMillis   int                        `yaml:"timeoutMillis,omitempty"`
	AutoCreateTable bool                       `yaml:"autoCreateTable"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("entitymeta failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("entitymeta", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.StringP("config", "c", "", "Path to the store configuration (YAML)")
	envFiles := flags.StringSlice("env-file", nil, "Load .env files; repeatable, later files override earlier ones")
	logLevel := flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	logFormat := flags.String("log-format", "text", "Log format: text or json")
	showVersion := flags.BoolP("version", "v", false, "Print version and exit")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		info := entitymeta.GetVersionInfo()
		fmt.Fprintf(stdout, "entitymeta version %s\n", info.Version)
		fmt.Fprintf(stdout, "Git commit: %s\n", info.GitCommit)
		fmt.Fprintf(stdout, "Build date: %s\n", info.BuildDate)
		fmt.Fprintf(stdout, "Go version: %s\n", info.GoVersion)
		return nil
	}

	logger := logging.NewLogger(logging.Config{Level: *logLevel, Format: *logFormat, Output: stderr})

	cfg := config.DefaultStoreConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(*envFiles...); err != nil {
		return fmt.Errorf("failed to apply environment: %w", err)
	}
	logger.Debug("configuration loaded",
		slog.String("region", cfg.Region),
		slog.Int("tables", len(cfg.Tables)))

	reports, err := resolveTables(cfg, logger)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return err
	}
	return enc.Close()
}

// resolveTables resolves every configured table entry in entity order.
func resolveTables(cfg config.StoreConfig, logger *slog.Logger) ([]tableReport, error) {
	entities := make([]string, 0, len(cfg.Tables))
	for name := range cfg.Tables {
		entities = append(entities, name)
	}
	sort.Strings(entities)

	env := cfg.Environment()
	reports := make([]tableReport, 0, len(entities))
	for _, entity := range entities {
		opts := cfg.Tables[entity]
		name, err := resolver.ResolveTableName(entity, entity, &opts, env, expression.Default())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entity, err)
		}
		tc, err := resolver.ResolveTableConfig(entity, &opts, logger.With(slog.String("entity", entity)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entity, err)
		}

		report := tableReport{
			Entity:          entity,
			TableName:       name,
			Consistency:     tc.Consistency,
			Durability:      tc.Durability,
			TimeoutMillis:   tc.TimeoutMillis,
			AutoCreateTable: tc.AutoCreateTable,
		}
		if limits, ok := tc.Limits(cfg); ok {
			report.Limits = &limits
		}
		reports = append(reports, report)
	}
	return reports, nil
}
