package currency

import (
	"fmt"
	"strings"
)

// Pair is a currency pair in the API's "FROM-TO" notation, e.g. USD-BRL.
type Pair struct {
	From string
	To   string
}

func ParsePair(str string) (Pair, error) {
	parts := strings.Split(strings.TrimSpace(str), "-")

	if len(parts) != 2 || len(parts[0]) != 3 || len(parts[1]) != 3 {
		return Pair{}, fmt.Errorf("value %s is not valid currency pair", str)
	}

	return Pair{
		From: strings.ToUpper(parts[0]),
		To:   strings.ToUpper(parts[1]),
	}, nil
}

func (p Pair) String() string {
	return p.From + "-" + p.To
}
