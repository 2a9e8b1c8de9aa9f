// importorders uploads a CSV of orders straight to the counter API, with
// the same streaming transfer the web panel uses. Handy for big files and
// for scripting.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/counter"
)

func main() {
	apiBase := flag.String("api", os.Getenv("COUNTER_API_BASE_URL"), "Counter API base URL")
	path := flag.String("file", "", "CSV file to import")
	timeout := flag.Duration("timeout", 10*time.Minute, "Upload timeout")
	flag.Parse()

	if *apiBase == "" {
		fmt.Fprintf(os.Stderr, "Error: -api not provided and COUNTER_API_BASE_URL not set\n")
		os.Exit(1)
	}
	if *path == "" {
		fmt.Fprintf(os.Stderr, "Error: -file is required\n")
		os.Exit(1)
	}

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := counter.NewClient(*apiBase, nil)

	lastPct := -1
	resp, err := client.Import(ctx, filepath.Base(*path), f, info.Size(), func(pct int) {
		if pct != lastPct {
			lastPct = pct
			fmt.Fprintf(os.Stderr, "\ruploading... %3d%%", pct)
		}
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(resp.Message)
}
