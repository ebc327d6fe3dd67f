package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	currency "github.com/malusev998/quote-sheet"
	"github.com/malusev998/quote-sheet/transform"
)

// Service runs the extract, transform and load steps in order. Storage holds
// optional archives written to after the workbook has been saved.
type Service struct {
	Fetcher   currency.Fetcher
	Transform currency.Transformer
	Loader    currency.Loader
	Storage   []currency.Storage
	Location  *time.Location
	Logger    *zap.Logger
}

func (s Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}

	return s.Logger
}

func (s Service) Quotes(pair currency.Pair, days int) ([]currency.Quote, error) {
	raw, err := s.Fetcher.Fetch(pair, days)
	if err != nil {
		return nil, err
	}

	transformer := s.Transform

	if transformer == nil {
		transformer = transform.Quotes
	}

	quotes, err := transformer(raw, s.Location)
	if err != nil {
		return nil, err
	}

	s.logger().Info("quotes fetched", zap.String("pair", pair.String()), zap.Int("count", len(quotes)))

	return quotes, nil
}

func (s Service) Update(pair currency.Pair, days int) ([]currency.Quote, error) {
	quotes, err := s.Quotes(pair, days)
	if err != nil {
		return nil, err
	}

	if err := s.Loader.Load(quotes); err != nil {
		return nil, err
	}

	for _, storage := range s.Storage {
		stored, err := storage.Store(pair, quotes)
		if err != nil {
			return nil, fmt.Errorf("storing quotes in %s: %w", storage.GetStorageProviderName(), err)
		}

		s.logger().Info("quotes archived",
			zap.String("storage", storage.GetStorageProviderName()),
			zap.Int("count", len(stored)),
		)
	}

	return quotes, nil
}
