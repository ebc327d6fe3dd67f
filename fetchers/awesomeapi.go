package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	currency "github.com/malusev998/quote-sheet"
)

type AwesomeAPIFetcher struct {
	Ctx    context.Context
	URL    string
	Client *http.Client
	Logger *zap.Logger
}

func (a AwesomeAPIFetcher) endpoint(pair currency.Pair, days int) string {
	url := a.URL

	if url == "" {
		url = AwesomeAPIURL
	}

	return fmt.Sprintf("%s/%s/%d", strings.TrimRight(url, "/"), pair, days)
}

// Fetch issues a single GET for the last days quotes of pair. There is no retry.
func (a AwesomeAPIFetcher) Fetch(pair currency.Pair, days int) ([]currency.RawQuote, error) {
	ctx := a.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	client := a.Client

	if client == nil {
		client = &http.Client{}
	}

	logger := a.Logger

	if logger == nil {
		logger = zap.NewNop()
	}

	url := a.endpoint(pair, days)
	req, err := getData(ctx, url)

	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	res, err := client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer res.Body.Close()

	if err := handleHTTPStatusCodeError(res); err != nil {
		logger.Warn("quote API returned an error", zap.String("url", url), zap.Int("status", res.StatusCode))
		return nil, err
	}

	var data []currency.RawQuote

	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", currency.ErrMalformedResponse, err)
	}

	logger.Debug("quotes fetched", zap.String("pair", pair.String()), zap.Int("count", len(data)))

	return data, nil
}
