package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	currency "github.com/malusev998/quote-sheet"
)

const (
	MySQLTimeFormat = "2006-01-02 15:04:05"
	MySQLDateFormat = "2006-01-02"
)

var ErrNotEnoughBytesInGenerator = errors.New("id generator must return 16 bytes")

type (
	IDGenerator interface {
		Generate() []byte
	}

	uuidGenerator struct{}

	mysqlStorage struct {
		ctx         context.Context
		db          *sql.DB
		idGenerator IDGenerator
		tableName   string
	}
)

func (uuidGenerator) Generate() []byte {
	id := uuid.New()

	return id[:]
}

func NewMySQLStorage(config MySQLConfig) (currency.Storage, error) {
	db, err := sql.Open("mysql", config.ConnectionString)
	if err != nil {
		return nil, err
	}

	return NewSQLStorage(config.Cxt, db, config.IDGenerator, config.TableName, config.Migrate)
}

func NewSQLStorage(ctx context.Context, db *sql.DB, idGenerator IDGenerator, tableName string, migrate bool) (currency.Storage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if idGenerator == nil {
		idGenerator = uuidGenerator{}
	}

	st := mysqlStorage{
		ctx:         ctx,
		db:          db,
		idGenerator: idGenerator,
		tableName:   tableName,
	}

	if migrate {
		if err := st.Migrate(); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func (m mysqlStorage) Migrate() error {
	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(
	id CHAR(36) PRIMARY KEY,
	pair VARCHAR(7) NOT NULL,
	quote_date DATE NOT NULL,
	bid DOUBLE NOT NULL,
	ask DOUBLE NOT NULL,
	high DOUBLE NOT NULL,
	low DOUBLE NOT NULL,
	created_at DATETIME NOT NULL,
	INDEX idx_%s_pair_date (pair, quote_date)
);`, m.tableName, m.tableName))

	return err
}

func (m mysqlStorage) Drop() error {
	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", m.tableName))

	return err
}

func (m mysqlStorage) Close() error {
	return m.db.Close()
}

func (m mysqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}

func (m mysqlStorage) Store(pair currency.Pair, quotes []currency.Quote) ([]currency.QuoteWithID, error) {
	ids := make([]uuid.UUID, 0, len(quotes))

	for range quotes {
		id, err := uuid.FromBytes(m.idGenerator.Generate())
		if err != nil {
			return nil, ErrNotEnoughBytesInGenerator
		}

		ids = append(ids, id)
	}

	tx, err := m.db.BeginTx(m.ctx, nil)
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(m.ctx, fmt.Sprintf("INSERT INTO %s(id, pair, quote_date, bid, ask, high, low, created_at) VALUES (?,?,?,?,?,?,?,?);", m.tableName))
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	defer stmt.Close()

	createdAt := time.Now().UTC().Format(MySQLTimeFormat)
	result := make([]currency.QuoteWithID, 0, len(quotes))

	for i, q := range quotes {
		_, err := stmt.ExecContext(m.ctx, ids[i].String(), pair.String(), q.Date.Format(MySQLDateFormat), q.Bid, q.Ask, q.High, q.Low, createdAt)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		result = append(result, currency.QuoteWithID{Quote: q, Pair: pair, ID: ids[i]})
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	return result, nil
}

func (m mysqlStorage) GetByDate(pair currency.Pair, start, end time.Time) ([]currency.QuoteWithID, error) {
	rows, err := m.db.QueryContext(
		m.ctx,
		fmt.Sprintf("SELECT id, quote_date, bid, ask, high, low FROM %s WHERE pair = ? AND quote_date >= ? AND quote_date < ? ORDER BY quote_date;", m.tableName),
		pair.String(),
		start.Format(MySQLDateFormat),
		end.Format(MySQLDateFormat),
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	quotes := make([]currency.QuoteWithID, 0)

	for rows.Next() {
		var id, date string
		var q currency.Quote

		if err := rows.Scan(&id, &date, &q.Bid, &q.Ask, &q.High, &q.Low); err != nil {
			return nil, err
		}

		if q.Date, err = time.ParseInLocation(MySQLDateFormat, date, start.Location()); err != nil {
			return nil, err
		}

		parsedID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, currency.QuoteWithID{Quote: q, Pair: pair, ID: parsedID})
	}

	return quotes, rows.Err()
}
