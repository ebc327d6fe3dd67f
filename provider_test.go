package currency_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/quote-sheet"
)

func TestConvertToProvidersFromStringSlice(t *testing.T) {
	assert := require.New(t)

	values := []struct {
		value    []string
		expected interface{}
		err      error
	}{
		{[]string{"awesomeapi", "AwesomeAPI"}, []currency.Provider{currency.AwesomeAPIProvider, currency.AwesomeAPIProvider}, nil},
		{[]string{"not-valid-value"}, []currency.Provider(nil), errors.New("value not-valid-value is not valid Provider")},
	}
	for _, value := range values {
		providers, err := currency.ConvertToProvidersFromStringSlice(value.value)
		assert.Equal(value.expected, providers)
		assert.Equal(value.err, err)
	}
}

func TestConvertToProviderFromString(t *testing.T) {
	assert := require.New(t)
	values := []struct {
		value    string
		expected interface{}
		err      error
	}{
		{"awesomeapi", currency.AwesomeAPIProvider, nil},
		{"AWESOMEAPI", currency.AwesomeAPIProvider, nil},
		{"", currency.EmptyProvider, errors.New("value  is not valid Provider")},
		{"exchangeratesapi", currency.EmptyProvider, errors.New("value exchangeratesapi is not valid Provider")},
	}

	for _, value := range values {
		provider, err := currency.ConvertToProviderFromString(value.value)
		assert.Equal(value.expected, provider)
		assert.Equal(value.err, err)
	}
}
