// Package transform turns raw API entries into the dataset written to the workbook.
package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	currency "github.com/malusev998/quote-sheet"
)

// Quotes projects raw onto date, bid, ask, high and low and sorts the result by
// date. Timestamps are read as epoch seconds and truncated to the calendar date in
// loc; a nil loc means time.Local. Entries sharing a date keep their input order.
func Quotes(raw []currency.RawQuote, loc *time.Location) ([]currency.Quote, error) {
	if loc == nil {
		loc = time.Local
	}

	quotes := make([]currency.Quote, 0, len(raw))

	for i, r := range raw {
		quote, err := project(r, loc)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		quotes = append(quotes, quote)
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Date.Before(quotes[j].Date)
	})

	return quotes, nil
}

func project(r currency.RawQuote, loc *time.Location) (currency.Quote, error) {
	date, err := Date(r.Timestamp, loc)
	if err != nil {
		return currency.Quote{}, err
	}

	var quote currency.Quote
	quote.Date = date

	fields := []struct {
		name  string
		value string
		dst   *float64
	}{
		{"bid", r.Bid, &quote.Bid},
		{"ask", r.Ask, &quote.Ask},
		{"high", r.High, &quote.High},
		{"low", r.Low, &quote.Low},
	}

	for _, f := range fields {
		if *f.dst, err = parseFloat(f.name, f.value); err != nil {
			return currency.Quote{}, err
		}
	}

	return quote, nil
}

// Date converts an epoch-seconds timestamp to midnight of its calendar date in loc.
func Date(timestamp string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(timestamp) == "" {
		return time.Time{}, fmt.Errorf("%w: timestamp is missing", currency.ErrMalformedResponse)
	}

	seconds, err := strconv.ParseInt(strings.TrimSpace(timestamp), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q is not an integer", currency.ErrMalformedResponse, timestamp)
	}

	y, m, d := time.Unix(seconds, 0).In(loc).Date()

	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

func parseFloat(name, value string) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return 0, fmt.Errorf("%w: %s is missing", currency.ErrMalformedResponse, name)
	}

	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", currency.ErrMalformedResponse, name, value)
	}

	f, _ := d.Float64()

	return f, nil
}
