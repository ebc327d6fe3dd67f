package storage_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bxcodec/faker/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/quote-sheet"
	"github.com/malusev998/quote-sheet/storage"
)

const insertQuery = "INSERT INTO quote_store_test_unit(id, pair, quote_date, bid, ask, high, low, created_at) VALUES (?,?,?,?,?,?,?,?);"

type (
	IDGeneratorMock struct {
		mock.Mock
	}
)

func (i *IDGeneratorMock) Generate() []byte {
	args := i.Called()
	if value, ok := args.Get(0).([]byte); ok {
		return value
	}
	return nil
}

var usdBrl = currency.Pair{From: "USD", To: "BRL"}

func testQuotes() []currency.Quote {
	return []currency.Quote{
		{Date: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), Bid: 5.05, Ask: 5.06, High: 5.10, Low: 5.00},
		{Date: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), Bid: 5.07, Ask: 5.08, High: 5.12, Low: 5.01},
	}
}

func TestMysqlStorage_StoreUnit(t *testing.T) {
	t.Parallel()
	db, m, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	defer db.Close()
	assert := require.New(t)
	ctx := context.Background()
	st, err := storage.NewSQLStorage(ctx, db, nil, "quote_store_test_unit", false)
	assert.NoError(err)

	quotes := testQuotes()

	t.Run("Transaction_Not_Started", func(t *testing.T) {
		m.ExpectBegin().WillReturnError(errors.New("error while starting transaction"))
		_, err := st.Store(usdBrl, quotes)
		assert.Error(err)
		assert.Nil(m.ExpectationsWereMet())
		assert.Equal("error while starting transaction", err.Error())
	})

	t.Run("Prepare_SQL_WithError", func(t *testing.T) {
		m.ExpectBegin()
		m.ExpectPrepare(insertQuery).WillReturnError(errors.New("cannot create prepare statement"))
		m.ExpectRollback()

		_, err := st.Store(usdBrl, quotes)
		assert.Nil(m.ExpectationsWereMet())
		assert.Error(err)
		assert.Equal("cannot create prepare statement", err.Error())
	})

	t.Run("Exec_WithError", func(t *testing.T) {
		m.ExpectBegin()
		prepared := m.ExpectPrepare(insertQuery)
		prepared.ExpectExec().
			WithArgs(sqlmock.AnyArg(), "USD-BRL", "2024-05-01", 5.05, 5.06, 5.10, 5.00, sqlmock.AnyArg()).
			WillReturnError(errors.New("duplicate entry"))
		m.ExpectRollback()

		_, err := st.Store(usdBrl, quotes)
		assert.Nil(m.ExpectationsWereMet())
		assert.Equal("duplicate entry", err.Error())
	})

	t.Run("Stored", func(t *testing.T) {
		m.ExpectBegin()
		prepared := m.ExpectPrepare(insertQuery)
		prepared.ExpectExec().
			WithArgs(sqlmock.AnyArg(), "USD-BRL", "2024-05-01", 5.05, 5.06, 5.10, 5.00, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		prepared.ExpectExec().
			WithArgs(sqlmock.AnyArg(), "USD-BRL", "2024-05-02", 5.07, 5.08, 5.12, 5.01, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		m.ExpectCommit()

		stored, err := st.Store(usdBrl, quotes)
		assert.NoError(err)
		assert.Nil(m.ExpectationsWereMet())
		assert.Len(stored, 2)

		for i, q := range stored {
			assert.IsType(uuid.UUID{}, q.ID)
			assert.Equal(usdBrl, q.Pair)
			assert.Equal(quotes[i], q.Quote)
		}
	})
}

func TestMysqlStorage_IDGenerator(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	db, m, _ := sqlmock.New()
	defer db.Close()

	idNullBytes := &IDGeneratorMock{}
	idLessBytes := &IDGeneratorMock{}

	idNullBytes.On("Generate").Return(nil)
	idLessBytes.On("Generate").Return(make([]byte, 10))

	for _, gen := range []storage.IDGenerator{idNullBytes, idLessBytes} {
		st, err := storage.NewSQLStorage(context.Background(), db, gen, "quote_store_test", false)
		asserts.NoError(err)

		quotes, err := st.Store(usdBrl, testQuotes())

		asserts.Nil(quotes)
		asserts.True(errors.Is(err, storage.ErrNotEnoughBytesInGenerator))
	}

	// IDs are generated before the transaction starts.
	asserts.Nil(m.ExpectationsWereMet())
}

func TestMysqlStorage_GetByDateUnit(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	db, m, _ := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	defer db.Close()

	st, err := storage.NewSQLStorage(context.Background(), db, nil, "quote_get_test", false)
	asserts.NoError(err)

	first, second := uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{"id", "quote_date", "bid", "ask", "high", "low"}).
		AddRow(first.String(), "2024-05-01", 5.05, 5.06, 5.10, 5.00).
		AddRow(second.String(), "2024-05-02", 5.07, 5.08, 5.12, 5.01)

	m.ExpectQuery("SELECT id, quote_date, bid, ask, high, low FROM quote_get_test WHERE pair = ? AND quote_date >= ? AND quote_date < ? ORDER BY quote_date;").
		WithArgs("USD-BRL", "2024-05-01", "2024-05-08").
		WillReturnRows(rows)

	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	quotes, err := st.GetByDate(usdBrl, start, start.AddDate(0, 0, 7))

	asserts.NoError(err)
	asserts.Nil(m.ExpectationsWereMet())
	asserts.Len(quotes, 2)
	asserts.Equal(first, quotes[0].ID)
	asserts.Equal(testQuotes()[0], quotes[0].Quote)
	asserts.Equal(testQuotes()[1], quotes[1].Quote)
}

func TestMysqlStorage_MigrateAndDropUnit(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	db, m, _ := sqlmock.New()
	defer db.Close()

	m.ExpectExec("CREATE TABLE IF NOT EXISTS quote_migrate_test").WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectExec("DROP TABLE IF EXISTS quote_migrate_test").WillReturnResult(sqlmock.NewResult(0, 0))

	st, err := storage.NewSQLStorage(context.Background(), db, nil, "quote_migrate_test", true)
	asserts.NoError(err)
	asserts.Equal("mysql", st.GetStorageProviderName())
	asserts.NoError(st.Drop())
	asserts.Nil(m.ExpectationsWereMet())
}

func TestMySQL_Integration(t *testing.T) {
	dsn := os.Getenv("QUOTE_SHEET_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("QUOTE_SHEET_TEST_MYSQL_DSN is not set")
	}

	asserts := require.New(t)
	st, err := storage.NewMySQLStorage(storage.MySQLConfig{
		BaseConfig: storage.BaseConfig{
			Cxt:     context.Background(),
			Migrate: true,
		},
		ConnectionString: dsn,
		TableName:        "quote_integration_test",
	})
	asserts.NoError(err)
	defer st.Close()
	defer st.Drop()

	quotes := make([]currency.Quote, 0, 7)
	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		var q currency.Quote
		asserts.NoError(faker.FakeData(&q))
		q.Date = start.AddDate(0, 0, i)
		quotes = append(quotes, q)
	}

	stored, err := st.Store(usdBrl, quotes)
	asserts.NoError(err)
	asserts.Len(stored, 7)

	fetched, err := st.GetByDate(usdBrl, start, start.AddDate(0, 0, 3))
	asserts.NoError(err)
	asserts.Len(fetched, 3)
	asserts.Equal(quotes[0].Bid, fetched[0].Bid)
}
