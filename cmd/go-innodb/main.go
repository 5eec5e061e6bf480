package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wilhasse/go-ibdparse/inspect"
	"github.com/wilhasse/go-ibdparse/internal/logging"
	"github.com/wilhasse/go-ibdparse/page"
	"github.com/wilhasse/go-ibdparse/schema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("go-innodb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		file      = fs.String("file", "", "Path to InnoDB data file (required)")
		pageNum   = fs.Uint("page", 0, "Page number to read (default: 0)")
		pageRange = fs.String("range", "", "Inclusive page range to read, e.g. 3-10")
		outFormat = fs.String("format", "text", "Output format: text, json, or summary")
		showRecs  = fs.Bool("records", false, "Decode and show the records of index pages")
		maxRecs   = fs.Int("max-records", 100, "Maximum records to display, 0 for all")
		verbose   = fs.Bool("v", false, "Verbose output")
		sqlFile   = fs.String("sql", "", "Path to SQL file with CREATE TABLE statement (default: built-in users table)")
		workers   = fs.Int("workers", 4, "Pages decoded in parallel with -range")
		logLevel  = fs.String("log-level", "warn", "Log level: debug, info, warn, error")
		browse    = fs.Bool("browse", false, "Browse pages interactively")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "InnoDB Page Parser Tool\n\n")
		fmt.Fprintf(stderr, "Usage: go-innodb [OPTIONS]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  go-innodb -file data.ibd -page 3\n")
		fmt.Fprintf(stderr, "  go-innodb -file data.ibd -page 3 -format json\n")
		fmt.Fprintf(stderr, "  go-innodb -file data.ibd -page 3 -records -sql users.sql\n")
		fmt.Fprintf(stderr, "  go-innodb -file data.ibd -range 0-63 -format summary\n")
		fmt.Fprintf(stderr, "  go-innodb -file data.ibd -browse\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *file == "" {
		fmt.Fprintf(stderr, "Error: -file is required\n\n")
		fs.Usage()
		return 1
	}
	switch *outFormat {
	case "text", "json", "summary":
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q\n", *outFormat)
		return 1
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := logging.Init(logging.Config{Level: level, Output: stderr}); err != nil {
		fmt.Fprintf(stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	defer logging.Close()
	log := logging.WithFile(*file)

	// Load table schema
	rowSchema := schema.Users()
	if *sqlFile != "" {
		rowSchema, err = schema.FromSQLFile(*sqlFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error parsing SQL file: %v\n", err)
			return 1
		}
	}
	if *verbose {
		fmt.Fprintf(stdout, "Loaded schema: %s\n", rowSchema)
	}

	store, err := page.OpenFile(*file)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening file: %v\n", err)
		return 1
	}
	defer store.Close()
	log.Debug("file opened", "size", store.Size(), "pages", store.NumPages())

	in, err := inspect.New(store, rowSchema, inspect.Config{
		Options:   inspect.Options{Records: *showRecs || *browse, MaxRecords: *maxRecs},
		Workers:   *workers,
		CacheSize: 256,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer in.Close()

	ctx := context.Background()
	if *browse {
		if err := runBrowser(ctx, in, store.NumPages(), uint32(*pageNum)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	var reports []*inspect.PageReport
	if *pageRange != "" {
		from, to, err := parseRange(*pageRange)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		reports, err = in.Range(ctx, from, to)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		rep, err := in.Page(ctx, uint32(*pageNum))
		if err != nil {
			fmt.Fprintf(stderr, "Error reading page %d: %v\n", *pageNum, err)
			return 1
		}
		reports = []*inspect.PageReport{rep}
	}

	// Output based on format
	opts := outputOptions{records: *showRecs, verbose: *verbose}
	switch *outFormat {
	case "json":
		if err := outputJSON(stdout, reports); err != nil {
			fmt.Fprintf(stderr, "Error encoding JSON: %v\n", err)
			return 1
		}
	case "summary":
		for _, rep := range reports {
			outputSummary(stdout, rep)
		}
	default:
		for i, rep := range reports {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			outputText(stdout, rep, opts)
		}
	}

	for _, rep := range reports {
		if rep.Failed() {
			return 1
		}
	}
	return 0
}

// parseRange parses "A-B" into an inclusive page range.
func parseRange(s string) (uint32, uint32, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q, want FROM-TO", s)
	}
	from, err := strconv.ParseUint(strings.TrimSpace(a), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q: %w", a, err)
	}
	to, err := strconv.ParseUint(strings.TrimSpace(b), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q: %w", b, err)
	}
	if to < from {
		return 0, 0, fmt.Errorf("invalid range %q: end before start", s)
	}
	return uint32(from), uint32(to), nil
}
