//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/localeforge/core/pkg/extract"
)

func main() {
	messagesDir := flag.String("messages-dir", "", "output root for per-file JSON catalogs")
	moduleSource := flag.String("module-source", extract.DefaultModuleSource, "module the recognized imports must come from")
	generateIDs := flag.Bool("generate-ids", false, "derive ids for messages without one")
	enforceDescriptions := flag.Bool("enforce-descriptions", false, "require a description on every message")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/extract.go [flags] <path>\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := extract.Scan(ctx, flag.Arg(0),
		extract.WithMessagesDir(*messagesDir),
		extract.WithModuleSource(*moduleSource),
		extract.WithGenerateMessageIDs(*generateIDs),
		extract.WithEnforceDescriptions(*enforceDescriptions),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
		os.Exit(1)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %v\n", e)
	}

	output := map[string]interface{}{
		"filesScanned":  result.Stats.FilesScanned,
		"filesInScope":  result.Stats.FilesInScope,
		"messagesFound": result.Stats.MessagesFound,
		"duration":      result.Stats.Duration.String(),
	}
	json.NewEncoder(os.Stdout).Encode(output)

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
