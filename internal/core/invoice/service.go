package invoice

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/redjkee/transport-analytics/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrHeadersNotFound means the sheet has no description or no amount header.
var ErrHeadersNotFound = errors.New("invoice table headers not found")

// FileError wraps a failure that made one file contribute no records.
type FileError struct {
	Source string
	Err    error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("invoice %q: %v", e.Source, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Source is one input spreadsheet: a path on disk or an uploaded file.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type fileSource string

func (p fileSource) Name() string                 { return filepath.Base(string(p)) }
func (p fileSource) Open() (io.ReadCloser, error) { return os.Open(string(p)) }

// FileSources wraps filesystem paths as sources.
func FileSources(paths []string) []Source {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = fileSource(p)
	}
	return sources
}

// Options configures the service.
type Options struct {
	// Workers is the number of files parsed at once. Output order never depends on it.
	Workers      int
	MaxEmptyRows int
	MaxScanRows  int
	Extractor    FieldExtractor
	Observer     Observer
}

// DefaultOptions returns sequential processing with the standard row limits.
func DefaultOptions() Options {
	return Options{
		Workers:      1,
		MaxEmptyRows: DefaultMaxEmptyRows,
		MaxScanRows:  DefaultMaxScanRows,
	}
}

// Service extracts trip records from invoice spreadsheets.
type Service interface {
	// ParseSheet runs header detection and the row walk on an already loaded sheet.
	ParseSheet(sheet *Sheet, source string) ([]domain.InvoiceRecord, error)
	// ParseReader loads the workbook from r and parses its active sheet.
	ParseReader(r io.Reader, source string) ([]domain.InvoiceRecord, error)
	// Process parses every source in order and aggregates the results.
	// Per-file failures are absorbed: the file contributes no records.
	Process(sources []Source) domain.Batch
}

type service struct {
	log      *zap.Logger
	locator  *HeaderLocator
	walker   *RowWalker
	observer Observer
	workers  int
}

// NewService creates the extraction service.
func NewService(log *zap.Logger, opts Options) Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Extractor == nil {
		opts.Extractor = NewRegexExtractor()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &service{
		log:      log,
		locator:  NewHeaderLocator(log),
		walker:   NewRowWalker(log, opts.Extractor, opts.Observer, opts.MaxEmptyRows, opts.MaxScanRows),
		observer: opts.Observer,
		workers:  opts.Workers,
	}
}

func (svc *service) ParseSheet(sheet *Sheet, source string) ([]domain.InvoiceRecord, error) {
	headers := svc.locator.Locate(sheet)
	if !headers.Complete() {
		for _, field := range []domain.HeaderField{domain.HeaderDescription, domain.HeaderAmount} {
			if _, ok := headers[field]; ok {
				continue
			}
			svc.log.Warn("mandatory header not found",
				zap.String("source", source),
				zap.String("field", string(field)),
				zap.String("closest_cell", svc.locator.Suggest(sheet, field)))
		}
		return nil, ErrHeadersNotFound
	}

	svc.log.Info("table structure detected",
		zap.String("source", source),
		zap.Int("data_row", headers.HeaderRow()+1),
		zap.Int("description_col", headers[domain.HeaderDescription].Col),
		zap.Int("amount_col", headers[domain.HeaderAmount].Col))

	return svc.walker.Walk(sheet, headers, source), nil
}

func (svc *service) ParseReader(r io.Reader, source string) ([]domain.InvoiceRecord, error) {
	sheet, err := LoadSheet(r)
	if err != nil {
		return nil, err
	}
	return svc.ParseSheet(sheet, source)
}

// parseSource never fails the batch: any error, including a panic inside a
// third-party reader, is logged and turned into zero records.
func (svc *service) parseSource(src Source) (records []domain.InvoiceRecord) {
	name := src.Name()
	var err error

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while reading: %v", p)
			records = nil
		}
		if err != nil {
			err = &FileError{Source: name, Err: err}
			svc.log.Error("invoice file failed", zap.String("source", name), zap.Error(err))
		}
		svc.observer.FileProcessed(name, len(records), err)
	}()

	svc.log.Info("processing invoice file", zap.String("source", name))

	rc, err := src.Open()
	if err != nil {
		return nil
	}
	defer rc.Close()

	records, err = svc.ParseReader(rc, name)
	if err != nil {
		return nil
	}

	svc.log.Info("invoice file processed", zap.String("source", name), zap.Int("records", len(records)))
	return records
}

func (svc *service) Process(sources []Source) domain.Batch {
	results := make([][]domain.InvoiceRecord, len(sources))

	var g errgroup.Group
	g.SetLimit(svc.workers)
	for i, src := range sources {
		if isTransient(src.Name()) {
			svc.log.Debug("skipping transient file", zap.String("source", src.Name()))
			continue
		}
		i, src := i, src
		g.Go(func() error {
			results[i] = svc.parseSource(src)
			return nil
		})
	}
	_ = g.Wait()

	batch := Aggregate(results, len(sources))
	svc.log.Info("batch aggregated",
		zap.Int("files", len(sources)),
		zap.Int("records", batch.Stats.TotalRecords),
		zap.Float64("total_amount", batch.Stats.TotalAmount))
	return batch
}

// isTransient reports office lock/temp files such as "~$invoice.xlsx".
func isTransient(name string) bool {
	return strings.Contains(name, "~")
}
