// Package report renders fit and CADR results for people and spreadsheets.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"cadr/internal/decay"
)

// Output formats understood by Write.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Fixed formats v with two decimals, rounding half away from zero.
func Fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FitRow is one line of the per-recording CSV summary.
type FitRow struct {
	Source string
	Fit    decay.FitResult
	CADR   decay.CADREstimate
}

var fitHeader = []string{"file", "C0", "ACH", "stderr", "CADR", "CADR_err"}

// WriteFitCSV writes rows as file, C0, ACH, stderr, CADR, CADR_err. The ACH
// standard error keeps full precision.
func WriteFitCSV(w io.Writer, header bool, rows ...FitRow) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(fitHeader); err != nil {
			return err
		}
	}
	for _, r := range rows {
		rec := []string{
			r.Source,
			Fixed(r.Fit.C0),
			Fixed(r.Fit.Rate),
			strconv.FormatFloat(r.Fit.StdErr, 'g', -1, 64),
			Fixed(r.CADR.CADR),
			Fixed(r.CADR.StdErr),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
