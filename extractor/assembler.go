package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
	"github.com/zaparse/stmtledger/logger"
)

// Assembler turns page text into a ledger: detect, extract, validate.
// It holds no per-document state and is safe for concurrent use.
type Assembler struct {
	registry *config.Registry
	detector *Detector
	log      zerolog.Logger
}

func NewAssembler(reg *config.Registry, log zerolog.Logger) *Assembler {
	return &Assembler{
		registry: reg,
		detector: NewDetector(reg),
		log:      log,
	}
}

// Registry returns the format registry the assembler was built with.
func (a *Assembler) Registry() *config.Registry {
	return a.registry
}

// Assemble detects the format from the first page and extracts the ledger.
func (a *Assembler) Assemble(ctx context.Context, pages []string) (common.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return common.Ledger{}, err
	}
	f, ok := a.detector.Detect(pages)
	if !ok {
		return common.Ledger{}, fmt.Errorf("%w. Supported banks: %s",
			ErrFormatUndetected, strings.Join(a.registry.Names(), ", "))
	}
	return a.extract(ctx, f, pages)
}

// AssembleAs skips detection and extracts with the format id.
func (a *Assembler) AssembleAs(ctx context.Context, id string, pages []string) (common.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return common.Ledger{}, err
	}
	f, ok := a.registry.Lookup(id)
	if !ok {
		return common.Ledger{}, fmt.Errorf("%w %q", ErrUnknownFormat, id)
	}
	return a.extract(ctx, f, pages)
}

func (a *Assembler) extract(ctx context.Context, f config.Format, pages []string) (ledger common.Ledger, err error) {
	log := logger.FromContext(ctx, a.log).With().Str("format", f.ID).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("extractor panicked")
			ledger = common.Ledger{}
			err = &ExtractionError{Format: f.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	ctor, ok := constructors[f.ID]
	if !ok {
		return common.Ledger{}, &ExtractionError{Format: f.ID, Err: errNoExtractor}
	}
	ex, err := ctor(f)
	if err != nil {
		return common.Ledger{}, &ExtractionError{Format: f.ID, Err: err}
	}

	ledger = common.Ledger{
		Account:      ex.Account(pages),
		Transactions: ex.Transactions(pages),
	}
	if len(ledger.Transactions) == 0 {
		log.Debug().Int("pages", len(pages)).Msg("no rows extracted")
		return common.Ledger{}, fmt.Errorf("%s: %w", f.ID, ErrEmptyStatement)
	}

	log.Debug().
		Int("pages", len(pages)).
		Int("transactions", len(ledger.Transactions)).
		Msg("statement parsed")
	return ledger, nil
}

// Document is one statement in a batch. Bank, when set, bypasses detection.
// ID, when set, is added to the logger as document_id.
type Document struct {
	ID    string
	Name  string
	Bank  string
	Pages []string
}

// Result is the outcome for one Document.
type Result struct {
	Name   string
	Ledger common.Ledger
	Err    error
}

// AssembleBatch parses documents in parallel. Results come back in input
// order and a failing document never aborts the others.
func (a *Assembler) AssembleBatch(ctx context.Context, docs []Document) []Result {
	return iter.Map(docs, func(doc *Document) Result {
		var (
			ledger common.Ledger
			err    error
		)
		ctx := ctx
		if doc.ID != "" {
			log := logger.FromContext(ctx, a.log).With().Str("document_id", doc.ID).Logger()
			ctx = logger.WithContext(ctx, log)
		}
		if doc.Bank != "" {
			ledger, err = a.AssembleAs(ctx, doc.Bank, doc.Pages)
		} else {
			ledger, err = a.Assemble(ctx, doc.Pages)
		}
		return Result{Name: doc.Name, Ledger: ledger, Err: err}
	})
}
