package ops

import (
	"strings"

	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/pkg/exception"

	"github.com/spf13/viper"
)

const (
	KeyAccountGeneration                 = "account_generation"
	KeyMarketKinds                       = "market_kinds"
	KeyStablecoin                        = "stablecoin"
	KeyCreateMarketBuyOrderRequiresPrice = "create_market_buy_order_requires_price"
	KeyDivisionScale                     = "division_scale"
	KeyMarginRatioScale                  = "margin_ratio_scale"
	KeyGenerateClientOrderID             = "generate_client_order_id"
	KeyOptionExpiryHourUTC               = "option_expiry_hour_utc"
	KeyFees                              = "fees"
)

// FeeRate is a taker/maker pair applied when a venue omits per-market fees.
type FeeRate struct {
	Taker string
	Maker string
}

// Options is the resolved connector configuration. It is assembled once and passed by value.
type Options struct {
	AccountGeneration                 enum.AccountGeneration
	MarketKinds                       []enum.MarketKind
	Stablecoin                        string
	CreateMarketBuyOrderRequiresPrice bool
	DivisionScale                     int32
	MarginRatioScale                  int32
	GenerateClientOrderID             bool
	OptionExpiryHourUTC               int
	SpotFee                           FeeRate
	ContractFee                       FeeRate
	OptionFee                         FeeRate
}

// Fee returns the default fee pair for kind.
func (o Options) Fee(kind enum.MarketKind) FeeRate {
	switch kind {
	case enum.MarketKindSpot:
		return o.SpotFee
	case enum.MarketKindOption:
		return o.OptionFee
	default:
		return o.ContractFee
	}
}

// IsUnified reports whether the account is a unified trading account.
func (o Options) IsUnified() bool {
	return o.AccountGeneration != enum.AccountGenerationClassic
}

// Defaults is the lowest configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		KeyAccountGeneration:                 "unified",
		KeyMarketKinds:                       []string{"spot", "linear", "inverse", "option"},
		KeyStablecoin:                        "USDC",
		KeyCreateMarketBuyOrderRequiresPrice: true,
		KeyDivisionScale:                     18,
		KeyMarginRatioScale:                  4,
		KeyGenerateClientOrderID:             false,
		KeyOptionExpiryHourUTC:               8,
		KeyFees: map[string]any{
			"spot":     map[string]any{"taker": "0.001", "maker": "0.001"},
			"contract": map[string]any{"taker": "0.00055", "maker": "0.0002"},
			"option":   map[string]any{"taker": "0.0003", "maker": "0.0003"},
		},
	}
}

// VenueOverrides is the layer between defaults and the caller.
func VenueOverrides() map[string]any {
	return map[string]any{
		KeyFees: map[string]any{
			"spot": map[string]any{"taker": "0.001", "maker": "0.001"},
		},
	}
}

// New layers defaults, venue overrides and caller overrides, in that order.
func New(caller map[string]any) (Options, error) {
	v, err := layered(caller)
	if err != nil {
		return Options{}, err
	}

	return resolve(v)
}

// Load is New with a config file inserted between the venue layer and the caller layer.
func Load(path string, caller map[string]any) (Options, error) {
	v, err := layered(nil)
	if err != nil {
		return Options{}, err
	}

	if len(path) != 0 {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Options{}, errors.Wrap(err, "merge config file "+path)
		}
	}

	if len(caller) != 0 {
		if err := v.MergeConfigMap(caller); err != nil {
			return Options{}, errors.Wrap(err, "merge caller overrides")
		}
	}

	return resolve(v)
}

func layered(caller map[string]any) (*viper.Viper, error) {
	v := viper.New()
	for _, layer := range []map[string]any{Defaults(), VenueOverrides(), caller} {
		if len(layer) == 0 {
			continue
		}

		if err := v.MergeConfigMap(layer); err != nil {
			return nil, errors.Wrap(err, "merge config layer")
		}
	}

	return v, nil
}

func resolve(v *viper.Viper) (Options, error) {
	generation, ok := enum.ParseAccountGeneration(strings.ToLower(v.GetString(KeyAccountGeneration)))
	if !ok {
		return Options{}, errors.Wrapf(exception.ErrInvalidArgument, "account generation %q", v.GetString(KeyAccountGeneration))
	}

	kinds := make([]enum.MarketKind, 0, 4)
	for _, name := range v.GetStringSlice(KeyMarketKinds) {
		kind, ok := enum.ParseMarketKind(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return Options{}, errors.Wrapf(exception.ErrUnsupportedMarketKind, "market kind %q", name)
		}
		kinds = append(kinds, kind)
	}

	divScale := v.GetInt32(KeyDivisionScale)
	ratioScale := v.GetInt32(KeyMarginRatioScale)
	if divScale < 0 || ratioScale < 0 {
		return Options{}, errors.Wrap(exception.ErrInvalidArgument, "scale must be >= 0")
	}

	hour := v.GetInt(KeyOptionExpiryHourUTC)
	if hour < 0 || hour > 23 {
		return Options{}, errors.Wrapf(exception.ErrInvalidArgument, "option expiry hour %d", hour)
	}

	return Options{
		AccountGeneration:                 generation,
		MarketKinds:                       kinds,
		Stablecoin:                        strings.ToUpper(v.GetString(KeyStablecoin)),
		CreateMarketBuyOrderRequiresPrice: v.GetBool(KeyCreateMarketBuyOrderRequiresPrice),
		DivisionScale:                     divScale,
		MarginRatioScale:                  ratioScale,
		GenerateClientOrderID:             v.GetBool(KeyGenerateClientOrderID),
		OptionExpiryHourUTC:               hour,
		SpotFee:                           feeRate(v, "spot"),
		ContractFee:                       feeRate(v, "contract"),
		OptionFee:                         feeRate(v, "option"),
	}, nil
}

func feeRate(v *viper.Viper, group string) FeeRate {
	return FeeRate{
		Taker: v.GetString(KeyFees + "." + group + ".taker"),
		Maker: v.GetString(KeyFees + "." + group + ".maker"),
	}
}
