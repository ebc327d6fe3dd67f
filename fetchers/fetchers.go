package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const (
	AwesomeAPIURL = "https://economia.awesomeapi.com.br/json/daily"
)

var (
	ErrClient  = errors.New("client error")
	ErrServer  = errors.New("server error")
	ErrUnknown = errors.New("unknown error")
)

// StatusError is returned when the quote API answers with anything but 200.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code >= http.StatusBadRequest && e.Code < http.StatusInternalServerError:
		return ErrClient
	case e.Code >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnknown
	}
}

func handleHTTPStatusCodeError(res *http.Response) error {
	if res.StatusCode != http.StatusOK {
		return &StatusError{Code: res.StatusCode}
	}

	return nil
}

func getData(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")

	return req, nil
}
