// Package dataset reads and writes decay recordings as CSV, the format the
// sensor loggers produce: a "time" column in seconds followed by one column
// per channel.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"cadr/internal/decay"
)

const timeColumn = "time"

var ErrNoTimeColumn = errors.New("csv has no time column")

// ReadCSV parses a recording. Every column other than time must be numeric.
func ReadCSV(r io.Reader) (decay.TimeSeries, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return decay.TimeSeries{}, fmt.Errorf("read csv header: %w", err)
	}
	names := make([]string, len(header))
	timeIdx := -1
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		if strings.EqualFold(names[i], timeColumn) {
			timeIdx = i
		}
	}
	if timeIdx < 0 {
		return decay.TimeSeries{}, ErrNoTimeColumn
	}

	ts := decay.TimeSeries{Channels: make(map[string][]float64, len(names)-1)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return decay.TimeSeries{}, fmt.Errorf("read csv line %d: %w", line, err)
		}
		for i, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return decay.TimeSeries{}, fmt.Errorf("line %d column %q: %w", line, names[i], err)
			}
			if i == timeIdx {
				ts.Time = append(ts.Time, v)
				continue
			}
			ts.Channels[names[i]] = append(ts.Channels[names[i]], v)
		}
	}

	if err := ts.Validate(); err != nil {
		return decay.TimeSeries{}, err
	}
	return ts, nil
}

// ReadFile opens path and parses it with ReadCSV.
func ReadFile(path string) (decay.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return decay.TimeSeries{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	ts, err := ReadCSV(f)
	if err != nil {
		return decay.TimeSeries{}, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}

// WriteCSV writes ts with time first and channels in the given order, or
// alphabetically when columns is empty.
func WriteCSV(w io.Writer, ts decay.TimeSeries, columns ...string) error {
	if len(columns) == 0 {
		for name := range ts.Channels {
			columns = append(columns, name)
		}
		sort.Strings(columns)
	}
	for _, c := range columns {
		if _, ok := ts.Channels[c]; !ok {
			return fmt.Errorf("write csv: unknown channel %q", c)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{timeColumn}, columns...)); err != nil {
		return err
	}
	row := make([]string, len(columns)+1)
	for i, t := range ts.Time {
		row[0] = strconv.FormatFloat(t, 'f', -1, 64)
		for j, c := range columns {
			row[j+1] = strconv.FormatFloat(ts.Channels[c][i], 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
