package fetchers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	currency "github.com/malusev998/quote-sheet"
)

type (
	BaseConfig struct {
		Ctx     context.Context
		URL     string
		Timeout time.Duration
		Logger  *zap.Logger
	}
	AwesomeAPIConfig struct {
		BaseConfig
	}
)

func NewQuoteFetcher(provider currency.Provider, config interface{}) currency.Fetcher {
	switch provider {
	case currency.AwesomeAPIProvider:
		c := config.(AwesomeAPIConfig)

		return AwesomeAPIFetcher{
			Ctx:    c.Ctx,
			URL:    c.URL,
			Client: &http.Client{Timeout: c.Timeout},
			Logger: c.Logger,
		}
	}

	return nil
}
