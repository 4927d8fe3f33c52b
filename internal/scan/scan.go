// Package scan decodes many tile files on a fixed pool of workers and
// summarises each one.
package scan

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/teris-io/shortid"
	pb "gopkg.in/cheggaaa/pb.v1"

	hgt "github.com/flywave/go-hgt"
)

// Summary describes one decoded tile, or the reason it failed.
type Summary struct {
	Path       string
	Name       string
	Latitude   int
	Longitude  int
	Resolution hgt.Resolution
	MinHeight  int16
	MaxHeight  int16
	Voids      int
	Err        error
}

// Report is the outcome of one scan run. Results keep the order of the
// input paths.
type Report struct {
	ID      string
	Results []Summary
	Elapsed time.Duration
}

// Failed counts the files that could not be decoded.
func (r *Report) Failed() int {
	n := 0
	for _, s := range r.Results {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// OpenFunc decodes one tile file.
type OpenFunc func(path string) (*hgt.Tile, error)

// Scanner runs scans. The zero value is not usable; use New.
type Scanner struct {
	workers  int
	open     OpenFunc
	clock    clockwork.Clock
	logger   logrus.FieldLogger
	progress io.Writer
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithClock replaces the clock used to time runs.
func WithClock(c clockwork.Clock) Option {
	return func(s *Scanner) { s.clock = c }
}

// WithLogger sets the logger for per-file messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Scanner) { s.logger = l }
}

// WithProgress draws a progress bar on w.
func WithProgress(w io.Writer) Option {
	return func(s *Scanner) { s.progress = w }
}

// New returns a Scanner decoding files with open on the given number
// of workers.
func New(workers int, open OpenFunc, opts ...Option) *Scanner {
	if workers < 1 {
		workers = 1
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Scanner{
		workers: workers,
		open:    open,
		clock:   clockwork.NewRealClock(),
		logger:  discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run decodes every path. A file that fails does not stop the run; its
// error is kept in its Summary. Run only returns an error when ctx is
// cancelled, together with the partial report.
func (s *Scanner) Run(ctx context.Context, paths []string) (*Report, error) {
	id, err := shortid.Generate()
	if err != nil {
		return nil, err
	}
	log := s.logger.WithField("run", id)
	start := s.clock.Now()

	report := &Report{ID: id, Results: make([]Summary, len(paths))}

	bar := pb.New(len(paths))
	if s.progress != nil {
		bar.Output = s.progress
	} else {
		bar.NotPrint = true
	}
	bar.Start()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				report.Results[idx] = s.summarise(log, paths[idx])
				bar.Increment()
			}
		}()
	}

	var cancelled error
	next := 0
feed:
	for ; next < len(paths); next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	for ; next < len(paths); next++ {
		report.Results[next] = Summary{Path: paths[next], Err: cancelled}
	}

	report.Elapsed = s.clock.Since(start)
	log.WithFields(logrus.Fields{
		"files":   len(paths),
		"failed":  report.Failed(),
		"elapsed": report.Elapsed,
	}).Info("scan finished")

	return report, cancelled
}

func (s *Scanner) summarise(log logrus.FieldLogger, path string) Summary {
	sum := Summary{Path: path}
	tile, err := s.open(path)
	if err != nil {
		log.WithField("path", path).WithError(err).Warn("decode failed")
		sum.Err = err
		return sum
	}

	sum.Name = tile.Name()
	sum.Latitude = tile.Latitude
	sum.Longitude = tile.Longitude
	sum.Resolution = tile.Resolution
	sum.MinHeight = tile.MinHeight()
	sum.MaxHeight = tile.MaxHeight()
	sum.Voids = tile.Voids()
	log.WithField("tile", sum.Name).Debug("decoded")
	return sum
}
