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
	"dial-cli/internal/logger"
)

func chatMain(root rootArgs, args []string) {
	if err := runChat(root, args, os.Stdout); err != nil {
		logger.Fatalf("chat failed: %v", err)
	}
}

func runChat(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var baseURLOverride string
	var apiKeyOverride string
	var modelOverride string
	var system string
	var stream bool
	var timeoutSeconds int

	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.dial/config.toml)")
	fs.StringVar(&baseURLOverride, "base-url", "", "Override base URL (any of the accepted shapes)")
	fs.StringVar(&apiKeyOverride, "api-key", "", "Override API key (prefer config.toml)")
	fs.StringVar(&modelOverride, "model", "", "Model name (default from config)")
	fs.StringVar(&system, "system", "", "Optional system prompt")
	fs.BoolVar(&stream, "stream", false, "Stream the response as it is generated")
	fs.IntVar(&timeoutSeconds, "timeout", 0, "Timeout seconds (default 120)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	prompt := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if prompt == "" {
		return errors.New("missing prompt: dial-cli chat [flags] <prompt>")
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
	model := strings.TrimSpace(modelOverride)
	if model == "" {
		model = strings.TrimSpace(cfg.Model)
	}

	if timeoutSeconds <= 0 {
		timeoutSeconds = 120
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	client, err := openaimodel.New(openaimodel.Options{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
	})
	if err != nil {
		return fmt.Errorf("init gateway client: %w", err)
	}

	var messages []agent.Message
	if strings.TrimSpace(system) != "" {
		messages = append(messages, agent.Message{Role: agent.RoleSystem, Content: system})
	}
	messages = append(messages, agent.Message{Role: agent.RoleUser, Content: prompt})

	if stream {
		err := client.Stream(ctx, messages, model, func(chunk string) {
			_, _ = io.WriteString(out, chunk)
		})
		if err != nil {
			return err
		}
		_, _ = io.WriteString(out, "\n")
		return nil
	}

	got, err := client.Complete(ctx, messages, model)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, got)
	return nil
}
