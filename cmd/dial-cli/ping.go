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

	"dial-cli/internal/agent"
	openaimodel "dial-cli/internal/agent/openai"
	"dial-cli/internal/config"
	"dial-cli/internal/gateway"
	"dial-cli/internal/logger"
)

func pingMain(root rootArgs, args []string) {
	if err := runPing(root, args, os.Stdout); err != nil {
		logger.Fatalf("ping failed: %v", err)
	}
}

func runPing(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var baseURLOverride string
	var apiKeyOverride string
	var modelOverride string
	var chat bool
	var timeoutSeconds int

	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.dial/config.toml)")
	fs.StringVar(&baseURLOverride, "base-url", "", "Override base URL (bare host, /openai, or /openai/v1 are all accepted)")
	fs.StringVar(&apiKeyOverride, "api-key", "", "Override API key (prefer config.toml)")
	fs.StringVar(&modelOverride, "model", "", "Model for the chat round-trip (default from config)")
	fs.BoolVar(&chat, "chat", false, "Also round-trip a one-token chat completion")
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

	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	// Print the probe target up front: a blank config resolves to the public
	// default endpoint, and that should be visible, not mistaken for a local
	// gateway answering.
	ep := gateway.Resolve(baseURL)
	_, _ = fmt.Fprintf(out, "probing: %s\n", ep.APIBaseURL)
	if err := openaimodel.CheckBaseURLReachable(ctx, baseURL); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "reachable: %s\n", ep.APIBaseURL)

	if !chat {
		return nil
	}

	apiKey := strings.TrimSpace(apiKeyOverride)
	if apiKey == "" {
		apiKey = strings.TrimSpace(cfg.Token)
	}
	model := strings.TrimSpace(modelOverride)
	if model == "" {
		model = strings.TrimSpace(cfg.Model)
	}
	if model == "" {
		return errors.New("missing model: set model in config or pass -model")
	}

	client, err := openaimodel.New(openaimodel.Options{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
	})
	if err != nil {
		return fmt.Errorf("init gateway client: %w", err)
	}
	got, err := client.Complete(ctx, []agent.Message{
		{Role: agent.RoleSystem, Content: "Reply with exactly the word pong, nothing else."},
		{Role: agent.RoleUser, Content: "ping"},
	}, model)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "ok: %s\n", strings.TrimSpace(got))
	return nil
}
