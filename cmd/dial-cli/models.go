package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	openaimodel "dial-cli/internal/agent/openai"
	"dial-cli/internal/config"
	"dial-cli/internal/logger"
	"dial-cli/internal/picker"
)

func modelsMain(root rootArgs, args []string) {
	if err := runModels(root, args, os.Stdout); err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			return
		}
		logger.Fatalf("models failed: %v", err)
	}
}

func runModels(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var baseURLOverride string
	var apiKeyOverride string
	var pick bool
	var timeoutSeconds int

	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.dial/config.toml)")
	fs.StringVar(&baseURLOverride, "base-url", "", "Override base URL (any of the accepted shapes)")
	fs.StringVar(&apiKeyOverride, "api-key", "", "Override API key (prefer config.toml)")
	fs.BoolVar(&pick, "pick", false, "Choose a model interactively and save it to config")
	fs.IntVar(&timeoutSeconds, "timeout", 0, "Timeout seconds (default 30)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, nil))

	baseURL := strings.TrimSpace(baseURLOverride)
	if baseURL == "" {
		baseURL = cfg.URL
	}
	apiKey := strings.TrimSpace(apiKeyOverride)
	if apiKey == "" {
		apiKey = strings.TrimSpace(cfg.Token)
	}

	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	models, err := openaimodel.ListModels(ctx, baseURL, apiKey)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		_, _ = fmt.Fprintln(out, "gateway reports no models")
		return nil
	}

	if !pick {
		for _, m := range models {
			if m.Name() != m.ID {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", m.ID, m.Name())
			} else {
				_, _ = fmt.Fprintln(out, m.ID)
			}
		}
		return nil
	}

	items := make([]picker.Item, 0, len(models))
	for _, m := range models {
		items = append(items, picker.Item{ID: m.ID, Name: m.Name()})
	}
	chosen, err := picker.Run(items)
	if err != nil {
		return err
	}

	cfg.Model = chosen.ID
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("save chosen model: %w", err)
	}
	_, _ = fmt.Fprintf(out, "model set to %s\n", chosen.ID)
	return nil
}
