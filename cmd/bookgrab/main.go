package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookgrab/bookgrab/internal/archive"
	"github.com/bookgrab/bookgrab/internal/config"
	"github.com/bookgrab/bookgrab/internal/download"
	"github.com/bookgrab/bookgrab/internal/model"
	"github.com/bookgrab/bookgrab/internal/transport"
)

func main() {
	var (
		urlFlag      = flag.String("url", "", "URL of the book, magazine or newspaper issue to download")
		destFlag     = flag.String("dest", "", "Destination directory (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		formatsFlag  = flag.String("formats", "", "Comma-separated output formats: pdf, cbz, all (overrides config)")
		archiveFlag  = flag.String("archive", "", "Path of the archive file tracking completed downloads (overrides config)")
		keepFlag     = flag.Bool("keep-images", false, "Keep the per-page image directory after assembly")
		skipFlag     = flag.Bool("skip-download", false, "Identify the issue and discover its pages without downloading images")
		attemptsFlag = flag.Uint("attempts", 0, "Retry attempts per network fetch, 0 retries indefinitely (overrides config)")
		periodFlag   = flag.Bool("period", false, "Download every issue in the selected period")
		allFlag      = flag.Bool("all", false, "Download every issue of the series")
		verboseFlag  = flag.Bool("verbose", false, "Show debug output")
	)

	flag.Parse()

	url := *urlFlag
	if url == "" && flag.NArg() > 0 {
		url = flag.Arg(0)
	}
	if url == "" {
		fmt.Println("bookgrab - download books, magazines and newspapers as PDF/CBZ")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  bookgrab -url <URL> [options]")
		fmt.Println("  bookgrab <URL> [options]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	if *destFlag != "" {
		settings.Dest = *destFlag
	}
	if *formatsFlag != "" {
		formats, err := flagFormats(*formatsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings.Formats = formats
	}
	if *archiveFlag != "" {
		settings.ArchiveFile = *archiveFlag
	}
	if *keepFlag {
		settings.KeepImages = true
	}
	if *skipFlag {
		settings.SkipImageDownload = true
	}
	if isFlagSet("attempts") {
		settings.DownloadAttempts = *attemptsFlag
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	level := slog.LevelInfo
	if settings.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	arch, err := archive.Load(settings.ArchiveFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading archive file: %v\n", err)
		os.Exit(1)
	}

	client := transport.NewClient(settings.RetryPolicy(), logger)
	manager, err := download.NewManager(settings, client, arch, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	switch {
	case *allFlag:
		err = manager.DownloadSeries(ctx, url)
	case *periodFlag:
		err = manager.DownloadPeriod(ctx, url)
	default:
		var result *download.Result
		result, err = manager.DownloadIssue(ctx, url)
		if err == nil && result.Status == download.StatusComplete && result.Meta != nil {
			fmt.Printf("Done: %s\n", result.Meta.FullTitle())
		}
	}

	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flagFormats validates the -formats value and expands "all".
func flagFormats(value string) ([]string, error) {
	set, err := model.ParseFormatSet(value)
	if err != nil {
		return nil, err
	}
	formats := make([]string, 0, len(set))
	for f := range set {
		formats = append(formats, string(f))
	}
	return formats, nil
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
