package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	currency "github.com/malusev998/quote-sheet"
)

type (
	mongoStorage struct {
		ctx        context.Context
		client     *mongo.Client
		collection *mongo.Collection
	}

	mongoQuote struct {
		ID        interface{} `bson:"_id,omitempty"`
		Pair      string      `bson:"pair"`
		Date      time.Time   `bson:"date"`
		Bid       float64     `bson:"bid"`
		Ask       float64     `bson:"ask"`
		High      float64     `bson:"high"`
		Low       float64     `bson:"low"`
		CreatedAt time.Time   `bson:"createdAt"`
	}
)

func NewMongoStorage(config MongoDBConfig) (currency.Storage, error) {
	ctx := config.Cxt

	if ctx == nil {
		ctx = context.Background()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	st := mongoStorage{
		ctx:        ctx,
		client:     client,
		collection: client.Database(config.Database).Collection(config.Collection),
	}

	if config.Migrate {
		if err := st.Migrate(); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return st, nil
}

func (m mongoStorage) Migrate() error {
	_, err := m.collection.Indexes().CreateOne(m.ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "pair", Value: 1},
			{Key: "date", Value: 1},
		},
	})

	return err
}

func (m mongoStorage) Drop() error {
	return m.collection.Drop(m.ctx)
}

func (m mongoStorage) Close() error {
	return m.client.Disconnect(m.ctx)
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}

func (m mongoStorage) Store(pair currency.Pair, quotes []currency.Quote) ([]currency.QuoteWithID, error) {
	if len(quotes) == 0 {
		return []currency.QuoteWithID{}, nil
	}

	createdAt := time.Now().UTC()
	documents := make([]interface{}, 0, len(quotes))

	for _, q := range quotes {
		documents = append(documents, mongoQuote{
			Pair:      pair.String(),
			Date:      q.Date,
			Bid:       q.Bid,
			Ask:       q.Ask,
			High:      q.High,
			Low:       q.Low,
			CreatedAt: createdAt,
		})
	}

	result, err := m.collection.InsertMany(m.ctx, documents)
	if err != nil {
		return nil, err
	}

	stored := make([]currency.QuoteWithID, 0, len(quotes))

	for i, q := range quotes {
		stored = append(stored, currency.QuoteWithID{
			Quote: q,
			Pair:  pair,
			ID:    result.InsertedIDs[i],
		})
	}

	return stored, nil
}

func (m mongoStorage) GetByDate(pair currency.Pair, start, end time.Time) ([]currency.QuoteWithID, error) {
	filter := bson.M{
		"pair": pair.String(),
		"date": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}

	cursor, err := m.collection.Find(m.ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}

	defer cursor.Close(m.ctx)

	quotes := make([]currency.QuoteWithID, 0)

	for cursor.Next(m.ctx) {
		var doc mongoQuote

		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}

		quotes = append(quotes, currency.QuoteWithID{
			Quote: currency.Quote{
				Date: doc.Date.In(start.Location()),
				Bid:  doc.Bid,
				Ask:  doc.Ask,
				High: doc.High,
				Low:  doc.Low,
			},
			Pair: pair,
			ID:   doc.ID,
		})
	}

	return quotes, cursor.Err()
}
