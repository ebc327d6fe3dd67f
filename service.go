package currency

type (
	Service interface {
		// Quotes fetches and transforms without touching the workbook.
		Quotes(pair Pair, days int) ([]Quote, error)
		Update(pair Pair, days int) ([]Quote, error)
	}
)
