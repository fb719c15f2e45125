package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"dial-cli/internal/config"
	"dial-cli/internal/gateway"
	"dial-cli/internal/logger"
)

func resolveMain(root rootArgs, args []string) {
	if err := runResolve(root, args, os.Stdout); err != nil {
		logger.Fatalf("resolve failed: %v", err)
	}
}

func runResolve(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var baseURLOverride string
	var asJSON bool

	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.dial/config.toml)")
	fs.StringVar(&baseURLOverride, "base-url", "", "Resolve this URL instead of the configured one")
	fs.BoolVar(&asJSON, "json", false, "Print the resolved endpoint as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	raw := baseURLOverride
	if strings.TrimSpace(raw) == "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, nil))
		raw = cfg.URL
	}

	ep := gateway.Resolve(raw)
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			APIBaseURL        string `json:"api_base_url"`
			ModelDiscoveryURL string `json:"model_discovery_url"`
			UseAzure          bool   `json:"use_azure"`
		}{ep.APIBaseURL, ep.ModelDiscoveryURL, ep.UseAzure})
	}

	mode := "openai-v1"
	if ep.UseAzure {
		mode = "azure"
	}
	_, _ = fmt.Fprintf(out, "api base url:        %s\n", ep.APIBaseURL)
	_, _ = fmt.Fprintf(out, "model discovery url: %s\n", ep.ModelDiscoveryURL)
	_, _ = fmt.Fprintf(out, "routing mode:        %s\n", mode)
	return nil
}
