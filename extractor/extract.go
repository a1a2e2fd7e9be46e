package extractor

import (
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/absa"
	"github.com/zaparse/stmtledger/extractor/african_bank"
	"github.com/zaparse/stmtledger/extractor/bidvest"
	"github.com/zaparse/stmtledger/extractor/capitec"
	"github.com/zaparse/stmtledger/extractor/common"
	"github.com/zaparse/stmtledger/extractor/discovery"
	"github.com/zaparse/stmtledger/extractor/fnb"
	"github.com/zaparse/stmtledger/extractor/hbz"
	"github.com/zaparse/stmtledger/extractor/investec"
	"github.com/zaparse/stmtledger/extractor/nedbank"
	"github.com/zaparse/stmtledger/extractor/standard_bank"
	"github.com/zaparse/stmtledger/extractor/tymebank"
)

// LineExtractor turns the page text of one statement into ledger rows.
// Account and Transactions do not depend on each other.
type LineExtractor interface {
	Transactions(pages []string) []common.Transaction
	Account(pages []string) common.AccountInfo
}

// Constructor compiles an extractor for one registered format.
type Constructor func(config.Format) (LineExtractor, error)

func adapt[T LineExtractor](fn func(config.Format) (T, error)) Constructor {
	return func(f config.Format) (LineExtractor, error) {
		e, err := fn(f)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
}

var constructors = map[string]Constructor{
	"tymebank":       adapt(tymebank.New),
	"african_bank":   adapt(african_bank.New),
	"hbz_bank":       adapt(hbz.New),
	"discovery_bank": adapt(discovery.New),
	"investec":       adapt(investec.New),
	"bidvest":        adapt(bidvest.New),
	"absa":           adapt(absa.New),
	"nedbank":        adapt(nedbank.New),
	"standard_bank":  adapt(standard_bank.New),
	"fnb":            adapt(fnb.New),
	"capitec":        adapt(capitec.New),
}

// Supported reports whether an extractor exists for the format id.
func Supported(id string) bool {
	_, ok := constructors[id]
	return ok
}

// Detector picks a format from the first page of a statement. Formats are
// tried in registry order and the first keyword match wins.
type Detector struct {
	formats []config.Format
}

func NewDetector(reg *config.Registry) *Detector {
	return &Detector{formats: reg.Formats()}
}

// Detect inspects only the first page, so merchant names further down the
// statement cannot select another bank.
func (d *Detector) Detect(pages []string) (config.Format, bool) {
	first := common.FirstPage(pages)
	for _, f := range d.formats {
		if f.Matches(first) {
			return f, true
		}
	}
	return config.Format{}, false
}
