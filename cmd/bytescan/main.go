// Command bytescan splits its inputs on any byte of a small set and prints
// the resulting fields or the offset of the first delimiter.
//
//	bytescan -set '\t,' data.tsv
//	bytescan -mode first -set '\n' < log.txt
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/segmentio/asm/ascii"

	"github.com/mhr3/anybyte/byteset"
	"github.com/mhr3/anybyte/scan"
)

const (
	modeFields = "fields"
	modeFirst  = "first"
)

type config struct {
	set       string
	asciiOnly bool
	mode      string
	maxToken  int
	logLevel  string
	logFormat string
	inputs    []string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("bytescan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.set, "set", `\n`, "delimiter bytes, Go escapes allowed (at most 16 bytes)")
	fs.BoolVar(&cfg.asciiOnly, "ascii", false, "reject delimiter sets containing non-ASCII bytes")
	fs.StringVar(&cfg.mode, "mode", modeFields, "output mode: fields or first")
	fs.IntVar(&cfg.maxToken, "max-token", 1<<20, "maximum field size in bytes")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.inputs = fs.Args()

	if cfg.mode != modeFields && cfg.mode != modeFirst {
		return cfg, fmt.Errorf("invalid mode %q", cfg.mode)
	}
	if cfg.maxToken <= 0 {
		return cfg, fmt.Errorf("invalid max-token %d", cfg.maxToken)
	}
	return cfg, nil
}

// parseSet interprets raw as the body of a Go string literal.
func parseSet(raw string, asciiOnly bool) (byteset.Bytes, error) {
	chars, err := strconv.Unquote(`"` + raw + `"`)
	if err != nil {
		return byteset.Bytes{}, fmt.Errorf("invalid delimiter set %q: %w", raw, err)
	}
	if len(chars) == 0 {
		return byteset.Bytes{}, errors.New("delimiter set is empty")
	}
	if len(chars) > byteset.MaxBytes {
		return byteset.Bytes{}, fmt.Errorf("delimiter set has %d bytes, at most %d are supported", len(chars), byteset.MaxBytes)
	}
	if asciiOnly && !ascii.ValidString(chars) {
		return byteset.Bytes{}, fmt.Errorf("delimiter set %q is not ASCII", chars)
	}
	return byteset.FromString(chars), nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger, err := newLogger(stderr, cfg.logLevel, cfg.logFormat)
	if err != nil {
		return err
	}
	set, err := parseSet(cfg.set, cfg.asciiOnly)
	if err != nil {
		return err
	}
	s := set.Searcher()

	logger.DebugContext(ctx, "search configured",
		"set", set.String(),
		"strategy", byteset.Active.String(),
		"sse42", byteset.HostSSE42,
	)

	w := bufio.NewWriter(stdout)
	defer w.Flush() //nolint:errcheck

	if len(cfg.inputs) == 0 {
		cfg.inputs = []string{"-"}
	}
	for _, name := range cfg.inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processFile(ctx, logger, cfg, s, name, stdin, w); err != nil {
			return err
		}
	}
	return w.Flush()
}

func processFile(ctx context.Context, logger *slog.Logger, cfg config, s byteset.Searcher, name string, stdin io.Reader, w io.Writer) error {
	if name == "-" {
		return process(ctx, logger, cfg, s, name, stdin, w)
	}
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return process(ctx, logger, cfg, s, name, f, w)
}

func process(ctx context.Context, logger *slog.Logger, cfg config, s byteset.Searcher, name string, r io.Reader, w io.Writer) error {
	if cfg.mode == modeFirst {
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		idx := s.Index(data)
		logger.DebugContext(ctx, "first delimiter", "input", name, "offset", idx, "size", len(data))
		_, err = fmt.Fprintf(w, "%s\t%d\n", name, idx)
		return err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, cfg.maxToken)), cfg.maxToken)
	sc.Split(scan.Delimited(s))

	var fields, offset int
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok := sc.Bytes()
		if _, err := fmt.Fprintf(w, "%s\t%d\t%q\n", name, offset, tok); err != nil {
			return err
		}
		offset += len(tok) + 1
		fields++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", name, err)
	}
	logger.InfoContext(ctx, "input scanned", "input", name, "fields", fields)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "bytescan:", err)
		stop()
		os.Exit(1)
	}
}
