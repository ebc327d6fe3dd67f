package currency

import (
	"errors"
	"time"
)

var ErrMalformedResponse = errors.New("malformed quote response")

type (
	// RawQuote is one daily entry as returned by the quote API. Every value is
	// sent as text; only the first entry carries the descriptive fields.
	RawQuote struct {
		Code       string `json:"code,omitempty"`
		Codein     string `json:"codein,omitempty"`
		Name       string `json:"name,omitempty"`
		High       string `json:"high"`
		Low        string `json:"low"`
		VarBid     string `json:"varBid,omitempty"`
		PctChange  string `json:"pctChange,omitempty"`
		Bid        string `json:"bid"`
		Ask        string `json:"ask"`
		Timestamp  string `json:"timestamp"`
		CreateDate string `json:"create_date,omitempty"`
	}

	// Quote is a single row of the dataset. Date has no time of day.
	Quote struct {
		Date time.Time
		Bid  float64
		Ask  float64
		High float64
		Low  float64
	}

	QuoteWithID struct {
		Quote
		Pair Pair
		ID   interface{}
	}

	// Config describes one update run.
	Config struct {
		Pair         Pair
		LookbackDays int
		WorkbookPath string
		SheetName    string
	}
)
