package currency

import "time"

type (
	Fetcher interface {
		Fetch(pair Pair, days int) ([]RawQuote, error)
	}

	Loader interface {
		Load(quotes []Quote) error
	}

	Transformer func(raw []RawQuote, loc *time.Location) ([]Quote, error)
)
