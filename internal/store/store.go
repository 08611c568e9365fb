package store

import (
	"context"
	"time"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/pkg/exception"

	"github.com/yanun0323/logs"
	"gorm.io/gorm"
)

const batchSize = 200

// MarketRow is one catalog market. Position keeps the merge order so a loaded snapshot resolves
// symbol ties exactly like the catalog it was saved from.
type MarketRow struct {
	Kind           uint8  `gorm:"primaryKey;autoIncrement:false"`
	MarketID       string `gorm:"primaryKey;size:64"`
	Position       int    `gorm:"index"`
	Symbol         string `gorm:"index;size:96"`
	Base           string `gorm:"size:32"`
	Quote          string `gorm:"size:32"`
	Settle         string `gorm:"size:32"`
	BaseID         string `gorm:"size:32"`
	QuoteID        string `gorm:"size:32"`
	SettleID       string `gorm:"size:32"`
	Active         bool
	ContractSize   string
	Expiry         int64
	ExpiryDatetime string
	ExpiryCode     string `gorm:"size:16"`
	Strike         string
	OptionType     uint8
	Taker          string
	Maker          string
	Precision      adapter.MarketPrecision `gorm:"embedded;embeddedPrefix:precision_"`
	AmountLimits   adapter.MinMax          `gorm:"embedded;embeddedPrefix:limit_amount_"`
	PriceLimits    adapter.MinMax          `gorm:"embedded;embeddedPrefix:limit_price_"`
	CostLimits     adapter.MinMax          `gorm:"embedded;embeddedPrefix:limit_cost_"`
	LeverageLimits adapter.MinMax          `gorm:"embedded;embeddedPrefix:limit_leverage_"`
	UpdatedAt      time.Time
}

func (MarketRow) TableName() string {
	return "markets"
}

func rowFromMarket(m adapter.Market, position int) MarketRow {
	return MarketRow{
		Kind:           uint8(m.Kind),
		MarketID:       m.ID,
		Position:       position,
		Symbol:         m.Symbol,
		Base:           m.Base,
		Quote:          m.Quote,
		Settle:         m.Settle,
		BaseID:         m.BaseID,
		QuoteID:        m.QuoteID,
		SettleID:       m.SettleID,
		Active:         m.Active,
		ContractSize:   m.ContractSize,
		Expiry:         m.Expiry,
		ExpiryDatetime: m.ExpiryDatetime,
		ExpiryCode:     m.ExpiryCode,
		Strike:         m.Strike,
		OptionType:     uint8(m.OptionType),
		Taker:          m.Taker,
		Maker:          m.Maker,
		Precision:      m.Precision,
		AmountLimits:   m.Limits.Amount,
		PriceLimits:    m.Limits.Price,
		CostLimits:     m.Limits.Cost,
		LeverageLimits: m.Limits.Leverage,
	}
}

func (row MarketRow) market() adapter.Market {
	return adapter.Market{
		ID:             row.MarketID,
		Symbol:         row.Symbol,
		Base:           row.Base,
		Quote:          row.Quote,
		Settle:         row.Settle,
		BaseID:         row.BaseID,
		QuoteID:        row.QuoteID,
		SettleID:       row.SettleID,
		Kind:           enum.MarketKind(row.Kind),
		Active:         row.Active,
		ContractSize:   row.ContractSize,
		Expiry:         row.Expiry,
		ExpiryDatetime: row.ExpiryDatetime,
		ExpiryCode:     row.ExpiryCode,
		Strike:         row.Strike,
		OptionType:     enum.OptionType(row.OptionType),
		Taker:          row.Taker,
		Maker:          row.Maker,
		Precision:      row.Precision,
		Limits: adapter.MarketLimits{
			Amount:   row.AmountLimits,
			Price:    row.PriceLimits,
			Cost:     row.CostLimits,
			Leverage: row.LeverageLimits,
		},
	}
}

// Store persists catalog snapshots so a process can start from the last known catalog.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return exception.ErrNilInstance
	}

	if err := s.db.WithContext(ctx).AutoMigrate(&MarketRow{}); err != nil {
		return errors.Wrap(err, "migrate markets")
	}

	return nil
}

// SaveMarkets replaces the stored snapshot with markets in one transaction.
func (s *Store) SaveMarkets(ctx context.Context, markets []adapter.Market) error {
	if s == nil || s.db == nil {
		return exception.ErrNilInstance
	}

	rows := make([]MarketRow, 0, len(markets))
	for i, m := range markets {
		rows = append(rows, rowFromMarket(m, i))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&MarketRow{}).Error; err != nil {
			return errors.Wrap(err, "clear markets")
		}

		if len(rows) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
			return errors.Wrap(err, "insert markets")
		}

		return nil
	})
	if err != nil {
		return err
	}

	logs.Infof("saved %d markets", len(rows))
	return nil
}

// LoadMarkets returns the stored snapshot in merge order.
func (s *Store) LoadMarkets(ctx context.Context) ([]adapter.Market, error) {
	if s == nil || s.db == nil {
		return nil, exception.ErrNilInstance
	}

	var rows []MarketRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load markets")
	}

	markets := make([]adapter.Market, 0, len(rows))
	for _, row := range rows {
		markets = append(markets, row.market())
	}

	return markets, nil
}
