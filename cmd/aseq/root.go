package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mnightingale/aseq"
	"github.com/mnightingale/aseq/internal/config"
	"github.com/mnightingale/aseq/internal/logging"
	"github.com/spf13/cobra"
)

const longUsage = `Print the bytes that follow every occurrence of a byte sequence in a file.

  file_name:     name of the file, or - for standard input
  hex_sequence:  byte sequence encoded as a hex string e.g: 042B
                 represents the two bytes 0x04 and 0x2B
  num_bytes:     the number of bytes to print after the sequence
                 is matched`

var (
	errNoFile     = errors.New("no file specified")
	errArgCount   = errors.New("wrong number of arguments")
	errOpenFailed = errors.New("failed to open file")
)

type options struct {
	configPath string
	chunkSize  int
	readAhead  bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "aseq <file_name> <hex_sequence> <num_bytes>",
		Short:   "Print the bytes following a byte sequence in a file",
		Long:    longUsage,
		Version: aseq.Version(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoFile
			}
			if err := cobra.ExactArgs(3)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", errArgCount, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args, stdin, stdout, stderr)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// Flags go before the positional arguments so that a num_bytes of "-1"
	// reaches the context length check instead of the flag parser.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.Flags().IntVar(&opts.chunkSize, "chunk-size", 0, "bytes read per chunk (overrides config)")
	cmd.Flags().BoolVar(&opts.readAhead, "read-ahead", false, "read the next chunk while scanning the current one")

	return cmd
}

func run(cmd *cobra.Command, opts options, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = opts.chunkSize
	}
	if cmd.Flags().Changed("read-ahead") {
		cfg.ReadAhead = opts.readAhead
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Init(stderr, cfg.Log.Level, cfg.Log.Format)

	contextLength, err := aseq.ParseContextLength(args[2])
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	pattern, err := aseq.ParsePattern(args[1], contextLength)
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	src, closeSrc, err := openSource(args[0], stdin)
	if err != nil {
		return err
	}
	defer closeSrc()

	scanOpts := []aseq.ScannerOption{aseq.WithChunkSize(cfg.ChunkSize)}
	if cfg.ReadAhead {
		scanOpts = append(scanOpts, aseq.WithReadAhead())
	}

	logger.Debug("scan started",
		slog.String("source", args[0]),
		slog.String("pattern", pattern.String()),
		slog.Int("context_length", contextLength),
		slog.Int("chunk_size", cfg.ChunkSize),
		slog.Bool("read_ahead", cfg.ReadAhead))

	printer := aseq.NewPrinter(stdout,
		aseq.WithSeparator(cfg.Output.Separator),
		aseq.WithRule(cfg.Output.Rule))

	st, err := aseq.NewScanner(src, pattern, scanOpts...).Run(ctx, printer)
	if isBrokenPipe(err) {
		logger.Debug("output closed early", slog.Int64("bytes_scanned", st.Offset))
		return nil
	}
	if err != nil {
		return err
	}

	logger.Debug("scan finished",
		slog.Int("matches", st.Matches),
		slog.Int64("bytes_scanned", st.Offset),
		slog.Bool("partial_match_dropped", st.PartialMatchLen > 0))
	return nil
}

// openSource opens name for reading; "-" is standard input.
func openSource(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == "-" {
		return stdin, func() {}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w: %w", errOpenFailed, aseq.ErrSourceUnavailable, err)
	}
	return f, func() { _ = f.Close() }, nil
}
