package pipeline

import (
	"io"

	"golang.org/x/sync/errgroup"
)

type result struct {
	numbers []uint64
	err     error
}

// processParallel reads every record up front, computes them concurrently and
// then writes the results in input order. Errors are reported exactly as
// processSequential would: the failure on the earliest line wins, and the
// results of all preceding lines are written first.
func (p *Pipeline) processParallel(r io.Reader, inputPath string, out *resultWriter, summary *Summary) error {
	lines := []*line{}

	scanErr := p.scan(r, inputPath, summary, func(l *line) error {
		lines = append(lines, l)
		return nil
	})

	results := make([]result, len(lines))

	eg := &errgroup.Group{}
	eg.SetLimit(p.opts.Parallelism)

	for i, l := range lines {
		i, l := i, l
		eg.Go(func() error {
			numbers, err := l.record.Multiples()
			if err != nil {
				results[i].err = &RecordError{Line: l.number, Text: l.text, Err: err}
				return results[i].err
			}

			results[i].numbers = numbers
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		p.logger.Debug("at least one record failed", "error", err)
	}

	for i, l := range lines {
		if results[i].err != nil {
			return results[i].err
		}

		if err := out.write(l.number, results[i].numbers); err != nil {
			return err
		}
	}

	return scanErr
}
