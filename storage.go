package currency

import "time"

type Storage interface {
	Store(pair Pair, quotes []Quote) ([]QuoteWithID, error)
	GetByDate(pair Pair, start, end time.Time) ([]QuoteWithID, error)
	GetStorageProviderName() string
	Migrate() error
	Drop() error
	Close() error
}
