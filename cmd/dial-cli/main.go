package main

import (
	"fmt"
	"os"

	"dial-cli/internal/logger"
)

var log = logger.Named("cli")

func main() {
	logger.Configure()
	if logFile, _, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		logger.Fatalf("parse args: %v", err)
	}
	if len(rest) > 0 {
		switch rest[0] {
		case "resolve":
			resolveMain(root, rest[1:])
			return
		case "models":
			modelsMain(root, rest[1:])
			return
		case "ping":
			pingMain(root, rest[1:])
			return
		case "chat":
			chatMain(root, rest[1:])
			return
		case "login":
			loginMain(root, rest[1:])
			return
		case "logout":
			logoutMain(root, rest[1:])
			return
		case "help", "-h", "--help":
			printUsage(os.Stdout)
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", rest[0])
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	printUsage(os.Stdout)
}

func printUsage(out *os.File) {
	fmt.Fprint(out, `dial-cli — client for an OpenAI-compatible AI gateway

Usage:
  dial-cli [-c key=value] <command> [flags]

Commands:
  resolve   Print the resolved endpoint for the configured base URL
  models    List models exposed by the gateway (-pick for interactive choice)
  ping      Check that the gateway is reachable (optionally round-trip a chat)
  chat      Send a one-shot prompt through the gateway
  login     Store the gateway token in ~/.dial/config.toml
  logout    Clear the stored token

Config keys for -c: url, token, model. Environment: DIAL_BASE_URL,
DIAL_API_KEY, DIAL_MODEL.
`)
}
