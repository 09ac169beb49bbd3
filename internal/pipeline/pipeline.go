// Package pipeline reads records from a line-oriented input file, computes the
// multiples for each one and writes one result line per record, in input
// order, to an output file.
package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kalevivt/multiple-of-a-and-b/internal/iometa"
	"github.com/kalevivt/multiple-of-a-and-b/internal/multiples"
)

const (
	initialLineBuffer = 4 * 1024
	maxLineLength     = 1024 * 1024

	progressCadence = 5 * time.Second
)

type BlankLinePolicy string

const (
	// BlankLinesSkip ignores lines containing only whitespace; they produce no
	// output line.
	BlankLinesSkip BlankLinePolicy = "skip"

	// BlankLinesError treats a line containing only whitespace as a parse error.
	BlankLinesError BlankLinePolicy = "error"
)

var errUnknownBlankLinePolicy = errors.New("unknown blank line policy")

func ParseBlankLinePolicy(policy string) (BlankLinePolicy, error) {
	switch BlankLinePolicy(strings.ToLower(policy)) {
	case BlankLinesSkip:
		return BlankLinesSkip, nil
	case BlankLinesError:
		return BlankLinesError, nil
	default:
		return "", fmt.Errorf("%w '%s' (expected '%s' or '%s')", errUnknownBlankLinePolicy, policy, BlankLinesSkip, BlankLinesError)
	}
}

type Options struct {
	// Parallelism is the maximum number of records computed concurrently. Values
	// below 2 process the input as a stream, one line at a time.
	Parallelism int

	BlankLines BlankLinePolicy

	// Echo, if set, receives a copy of every output line.
	Echo io.Writer
}

type Summary struct {
	Lines int

	// Records is the number of result lines that reached the output.
	Records      int
	Skipped      int
	BytesWritten int64
}

type Pipeline struct {
	logger *slog.Logger
	opts   Options
}

func New(logger *slog.Logger, opts Options) *Pipeline {
	if opts.BlankLines == "" {
		opts.BlankLines = BlankLinesSkip
	}

	return &Pipeline{
		logger: logger,
		opts:   opts,
	}
}

// Run processes inputPath into outputPath, creating or truncating the output.
// Processing stops at the first error; anything written before that point is
// left in the output file.
func (p *Pipeline) Run(inputPath string, outputPath string) (err error) {
	input, err := os.Open(inputPath)
	if err != nil {
		return &IOError{Op: "open", Path: inputPath, Err: err}
	}
	defer input.Close()

	var expected int64
	if stat, err := input.Stat(); err == nil {
		expected = stat.Size()
	}

	output, err := os.OpenFile(outputPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &IOError{Op: "create", Path: outputPath, Err: err}
	}
	defer func() {
		if closeErr := output.Close(); closeErr != nil && err == nil {
			err = &IOError{Op: "close", Path: outputPath, Err: closeErr}
		}
	}()

	p.logger.Debug("processing input",
		"input", inputPath,
		"output", outputPath,
		"parallelism", p.opts.Parallelism,
		"blank_lines", p.opts.BlankLines,
	)

	progress := iometa.NewProgressReader(
		input,
		func(progress float64, read, total int64) {
			p.logger.Debug("reading input",
				"input", inputPath,
				"progress", fmt.Sprintf("%0.2f%%", progress*100),
				"read", read,
				"total", total,
			)
		},
		progressCadence,
		expected,
	)

	summary, err := p.process(progress, inputPath, output, outputPath)
	if err != nil {
		return err
	}

	p.logger.Info("wrote multiples",
		"input", inputPath,
		"output", outputPath,
		"records", summary.Records,
		"skipped", summary.Skipped,
		"bytes_read", progress.BytesRead(),
		"bytes_written", summary.BytesWritten,
	)

	return nil
}

// Process reads records from r and writes result lines to w.
func (p *Pipeline) Process(r io.Reader, w io.Writer) (*Summary, error) {
	return p.process(r, "", w, "")
}

func (p *Pipeline) process(r io.Reader, inputPath string, w io.Writer, outputPath string) (*Summary, error) {
	counter := &iometa.CountingWriter{Writer: w}
	out := &resultWriter{
		out:        bufio.NewWriter(counter),
		echo:       p.opts.Echo,
		outputPath: outputPath,
	}

	summary := &Summary{}

	var err error
	if p.opts.Parallelism > 1 {
		err = p.processParallel(r, inputPath, out, summary)
	} else {
		err = p.processSequential(r, inputPath, out, summary)
	}

	// Partial output is still flushed so that it reflects every line that was
	// processed before the failure.
	if flushErr := out.out.Flush(); flushErr != nil && err == nil {
		err = &IOError{Op: "write", Path: outputPath, Err: flushErr}
	}

	summary.Records = counter.LinesWritten()
	summary.BytesWritten = counter.BytesWritten()

	return summary, err
}

func (p *Pipeline) processSequential(r io.Reader, inputPath string, out *resultWriter, summary *Summary) error {
	return p.scan(r, inputPath, summary, func(l *line) error {
		numbers, err := l.record.Multiples()
		if err != nil {
			return &RecordError{Line: l.number, Text: l.text, Err: err}
		}

		p.logger.Debug("computed multiples",
			"line", l.number,
			"record", l.record.String(),
			"count", len(numbers),
		)

		return out.write(l.number, numbers)
	})
}

type line struct {
	number int
	text   string
	record multiples.Record
}

// scan calls fn for each record in r, in order. Blank lines are handled
// according to the blank line policy and never reach fn.
func (p *Pipeline) scan(r io.Reader, inputPath string, summary *Summary, fn func(*line) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineLength)

	number := 0

	for scanner.Scan() {
		number++
		summary.Lines++

		text := scanner.Text()

		if strings.TrimSpace(text) == "" {
			if p.opts.BlankLines == BlankLinesError {
				return &ParseError{Line: number, Text: text, Err: ErrBlankLine}
			}

			p.logger.Debug("skipping blank line", "line", number)
			summary.Skipped++

			continue
		}

		record, err := multiples.ParseRecord(text)
		if err != nil {
			return &ParseError{Line: number, Text: text, Err: err}
		}

		if err := fn(&line{number: number, text: text, record: record}); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return &IOError{Op: "read", Path: inputPath, Err: err}
	}

	return nil
}

type resultWriter struct {
	out        *bufio.Writer
	echo       io.Writer
	outputPath string

	buff []byte
}

func (w *resultWriter) write(lineNumber int, numbers []uint64) error {
	w.buff = multiples.AppendLine(w.buff[:0], numbers)

	if _, err := w.out.Write(w.buff); err != nil {
		return &IOError{Op: "write", Path: w.outputPath, Err: err}
	}

	if w.echo != nil {
		if _, err := w.echo.Write(w.buff); err != nil {
			return fmt.Errorf("failed to echo result of line %d: %w", lineNumber, err)
		}
	}

	return nil
}
