package feed

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"market-analyzer/internal/model"
)

// LoadCSV reads a candle series from path. Rows are
// timestamp,open,high,low,close,volume with an optional header;
// timestamps are unix seconds or RFC 3339. The loaded series must pass
// the fixed-grid validation.
func LoadCSV(path string) (model.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening candle file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading candle file %s: %w", path, err)
	}

	series := make(model.PriceSeries, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		candle, err := parseCandleRow(row)
		if err != nil {
			return nil, fmt.Errorf("candle file %s row %d: %w", path, i+1, err)
		}
		series = append(series, candle)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("candle file %s has no candles", path)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("candle file %s: %w", path, err)
	}
	return series, nil
}

func isHeaderRow(row []string) bool {
	_, err := strconv.ParseFloat(row[1], 64)
	return err != nil
}

func parseCandleRow(row []string) (model.Candle, error) {
	ts, err := parseTimestamp(row[0])
	if err != nil {
		return model.Candle{}, err
	}
	fields := make([]float64, 5)
	names := []string{"open", "high", "low", "close", "volume"}
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return model.Candle{}, fmt.Errorf("parsing %s %q: %w", names[i], row[i+1], err)
		}
		fields[i] = v
	}
	return model.Candle{
		Timestamp: ts,
		Open:      fields[0],
		High:      fields[1],
		Low:       fields[2],
		Close:     fields[3],
		Volume:    fields[4],
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	return t.UTC(), nil
}
