package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	currency "github.com/malusev998/quote-sheet"
	"github.com/malusev998/quote-sheet/fetchers"
	"github.com/malusev998/quote-sheet/logger"
	"github.com/malusev998/quote-sheet/storage"
)

const EnvPrefix = "QUOTE_SHEET"

type (
	QuotesSettings struct {
		Provider string        `mapstructure:"provider"`
		URL      string        `mapstructure:"url"`
		Pair     string        `mapstructure:"pair"`
		Days     int           `mapstructure:"days"`
		Timeout  time.Duration `mapstructure:"timeout"`
		Timezone string        `mapstructure:"timezone"`
	}

	WorkbookSettings struct {
		Path  string `mapstructure:"path"`
		Sheet string `mapstructure:"sheet"`
	}

	MySQLSettings struct {
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Addr     string `mapstructure:"addr"`
		DB       string `mapstructure:"db"`
		Table    string `mapstructure:"table"`
	}

	MongoDBSettings struct {
		URI        string `mapstructure:"uri"`
		Database   string `mapstructure:"database"`
		Collection string `mapstructure:"collection"`
	}

	Settings struct {
		Quotes    QuotesSettings   `mapstructure:"quotes"`
		Workbook  WorkbookSettings `mapstructure:"workbook"`
		Log       logger.Options   `mapstructure:"log"`
		Storage   []string         `mapstructure:"storage"`
		Migrate   bool             `mapstructure:"migrate"`
		Databases struct {
			MySQL   MySQLSettings   `mapstructure:"mysql"`
			MongoDB MongoDBSettings `mapstructure:"mongodb"`
		} `mapstructure:"databases"`
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("quotes.provider", "awesomeapi")
	v.SetDefault("quotes.url", fetchers.AwesomeAPIURL)
	v.SetDefault("quotes.pair", "USD-BRL")
	v.SetDefault("quotes.days", 7)
	v.SetDefault("quotes.timeout", time.Duration(0))
	v.SetDefault("quotes.timezone", "Local")
	v.SetDefault("workbook.path", "Histórico Dolar.xlsx")
	v.SetDefault("workbook.sheet", "Gráficos de análise")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("storage", []string{})
	v.SetDefault("migrate", false)
	v.SetDefault("databases.mysql.user", "")
	v.SetDefault("databases.mysql.password", "")
	v.SetDefault("databases.mysql.addr", "localhost:3306")
	v.SetDefault("databases.mysql.db", "")
	v.SetDefault("databases.mysql.table", "quotes")
	v.SetDefault("databases.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("databases.mongodb.database", "quote_sheet")
	v.SetDefault("databases.mongodb.collection", "quotes")
}

// LoadSettings reads configFile (when it exists), a .env file and QUOTE_SHEET_*
// environment variables on top of the defaults.
func LoadSettings(configFile string) (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configFile)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func (s *Settings) Config() (currency.Config, error) {
	pair, err := currency.ParsePair(s.Quotes.Pair)
	if err != nil {
		return currency.Config{}, err
	}

	if s.Quotes.Days <= 0 {
		return currency.Config{}, fmt.Errorf("quotes.days must be positive, got %d", s.Quotes.Days)
	}

	if s.Workbook.Path == "" || s.Workbook.Sheet == "" {
		return currency.Config{}, errors.New("workbook.path and workbook.sheet are required")
	}

	return currency.Config{
		Pair:         pair,
		LookbackDays: s.Quotes.Days,
		WorkbookPath: s.Workbook.Path,
		SheetName:    s.Workbook.Sheet,
	}, nil
}

func (s *Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Quotes.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid quotes.timezone: %w", err)
	}

	return loc, nil
}

func (s *Settings) FetcherConfig(ctx context.Context, log *zap.Logger) (currency.Provider, interface{}, error) {
	provider, err := currency.ConvertToProviderFromString(s.Quotes.Provider)
	if err != nil {
		return currency.EmptyProvider, nil, err
	}

	return provider, fetchers.AwesomeAPIConfig{
		BaseConfig: fetchers.BaseConfig{
			Ctx:     ctx,
			URL:     s.Quotes.URL,
			Timeout: s.Quotes.Timeout,
			Logger:  log,
		},
	}, nil
}

// StorageConfig returns the configured archive providers, in configuration order,
// together with the config each one is built from.
func (s *Settings) StorageConfig(ctx context.Context) ([]storage.Provider, map[storage.Provider]interface{}, error) {
	providers, err := storage.ConvertToProvidersFromStringSlice(s.Storage)
	if err != nil {
		return nil, nil, err
	}

	base := storage.BaseConfig{
		Cxt:     ctx,
		Migrate: s.Migrate,
	}

	configs := make(map[storage.Provider]interface{}, len(providers))

	for _, p := range providers {
		switch p {
		case storage.MySQL:
			configs[p] = storage.MySQLConfig{
				BaseConfig:       base,
				ConnectionString: getMysqlDSN(s.Databases.MySQL),
				TableName:        s.Databases.MySQL.Table,
			}
		case storage.MongoDB:
			configs[p] = storage.MongoDBConfig{
				BaseConfig:       base,
				ConnectionString: s.Databases.MongoDB.URI,
				Database:         s.Databases.MongoDB.Database,
				Collection:       s.Databases.MongoDB.Collection,
			}
		}
	}

	return providers, configs, nil
}

func getMysqlDSN(config MySQLSettings) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = config.User
	mysqlDriverConfig.Passwd = config.Password
	mysqlDriverConfig.Addr = config.Addr
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = config.DB

	return mysqlDriverConfig.FormatDSN()
}
