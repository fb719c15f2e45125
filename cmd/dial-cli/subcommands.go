package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"dial-cli/internal/config"
	"dial-cli/internal/gateway"
	"dial-cli/internal/logger"
)

func loginMain(root rootArgs, args []string) {
	if len(args) > 0 && args[0] == "status" {
		cfg, err := config.Load("")
		if err != nil {
			logger.Fatalf("failed to load credentials: %v", err)
		}
		if strings.TrimSpace(cfg.Token) == "" {
			fmt.Println("not logged in")
		} else {
			ep := gateway.Resolve(cfg.URL)
			fmt.Printf("token configured for %s\n", ep.APIBaseURL)
		}
		return
	}

	fs := flag.NewFlagSet("login", flag.ExitOnError)
	var withToken bool
	var baseURL string
	fs.BoolVar(&withToken, "with-token", false, "Read the gateway token from stdin")
	fs.StringVar(&baseURL, "base-url", "", fmt.Sprintf("Gateway base URL to store (default %s)", gateway.DefaultBaseURL))
	if err := fs.Parse(args); err != nil {
		logger.Fatalf("parse login args: %v", err)
	}

	var key string
	switch {
	case withToken:
		key = readTokenFromStdin()
	case strings.TrimSpace(os.Getenv("DIAL_API_KEY")) != "":
		key = strings.TrimSpace(os.Getenv("DIAL_API_KEY"))
	default:
		key = promptToken()
	}
	if key == "" {
		logger.Fatalf("no token provided")
	}

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg.Token = key
	if strings.TrimSpace(baseURL) != "" {
		cfg.URL = strings.TrimSpace(baseURL)
	}
	if err := config.Save("", cfg); err != nil {
		logger.Fatalf("failed to save token: %v", err)
	}
	fmt.Println("Token saved.")
}

func logoutMain(root rootArgs, args []string) {
	cfg, err := config.Load("")
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg.Token = ""
	if err := config.Save("", cfg); err != nil {
		logger.Fatalf("failed to clear stored token: %v", err)
	}
	fmt.Println("Logged out and cleared stored token.")
}

func readTokenFromStdin() string {
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptToken() string {
	fmt.Printf("Gateway token (stored in %s): ", config.DefaultPath())
	return readTokenFromStdin()
}
