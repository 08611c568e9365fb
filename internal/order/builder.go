package order

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/numeric"
	"connector/internal/ops"
	"connector/pkg/exception"

	"github.com/google/uuid"
)

// Builder translates canonical order intents into venue requests.
type Builder struct {
	catalog *catalog.Catalog
	opts    ops.Options
	newID   func() string
}

func NewBuilder(c *catalog.Catalog, opts ops.Options) *Builder {
	return &Builder{
		catalog: c,
		opts:    opts,
		newID:   uuid.NewString,
	}
}

func (b *Builder) market(symbol string) (adapter.Market, error) {
	m, ok := b.catalog.Symbol(symbol)
	if !ok {
		return adapter.Market{}, errors.Wrapf(exception.ErrMarketNotFound, "symbol: %s", symbol)
	}
	return m, nil
}

// Create builds a create-order request.
func (b *Builder) Create(intent adapter.OrderIntent) (adapter.Request, error) {
	m, err := b.market(intent.Symbol)
	if err != nil {
		return adapter.Request{}, err
	}

	if err := validate(intent); err != nil {
		return adapter.Request{}, err
	}

	params := map[string]any{
		"category":  m.Kind.String(),
		"symbol":    m.ID,
		"side":      wireSide(intent.Side),
		"orderType": wireOrderType(intent.Type),
	}

	if err := b.quantity(params, m, intent); err != nil {
		return adapter.Request{}, err
	}

	if intent.Type == enum.OrderTypeLimit {
		params["price"] = numeric.RoundToStep(intent.Price, m.Precision.Price)
	}

	switch {
	case intent.PostOnly || intent.TimeInForce == enum.OrderTimeInForcePO:
		params["timeInForce"] = wireTimeInForce(enum.OrderTimeInForcePO)
	case intent.TimeInForce.IsAvailable():
		params["timeInForce"] = wireTimeInForce(intent.TimeInForce)
	}

	if err := b.triggers(params, m, intent); err != nil {
		return adapter.Request{}, err
	}

	if len(intent.AttachedStopLoss) != 0 {
		params["stopLoss"] = numeric.RoundToStep(intent.AttachedStopLoss, m.Precision.Price)
	}
	if len(intent.AttachedTakeProfit) != 0 {
		params["takeProfit"] = numeric.RoundToStep(intent.AttachedTakeProfit, m.Precision.Price)
	}

	if m.IsContract() && intent.PositionIdx != 0 {
		params["positionIdx"] = intent.PositionIdx
	}

	if m.IsSpot() && intent.IsLeverage && b.opts.IsUnified() {
		params["isLeverage"] = 1
	}

	switch {
	case len(intent.ClientOrderID) != 0:
		params["orderLinkId"] = intent.ClientOrderID
	case b.opts.GenerateClientOrderID || m.Kind == enum.MarketKindOption:
		params["orderLinkId"] = b.newID()
	}

	return adapter.Request{Category: m.Kind, Params: params}, nil
}

func validate(intent adapter.OrderIntent) error {
	if !intent.Side.IsAvailable() {
		return errors.Wrapf(exception.ErrOrderUnsupportedSide, "side: %d", intent.Side)
	}

	if !intent.Type.IsAvailable() {
		return errors.Wrapf(exception.ErrOrderUnsupportedType, "type: %d", intent.Type)
	}

	if intent.Type == enum.OrderTypeLimit && !numeric.IsPositive(intent.Price) {
		return exception.ErrOrderPriceRequired
	}

	set := 0
	for _, price := range []string{intent.TriggerPrice, intent.StopLossPrice, intent.TakeProfitPrice} {
		if len(price) != 0 {
			set++
		}
	}
	if set > 1 {
		return exception.ErrOrderConflictingTriggers
	}

	return nil
}

// quantity writes qty. Spot market buys may be sized in quote units, computed here rather than by
// the venue.
func (b *Builder) quantity(params map[string]any, m adapter.Market, intent adapter.OrderIntent) error {
	if m.IsSpot() && intent.Type == enum.OrderTypeMarket && intent.Side == enum.OrderSideBuy {
		return b.marketBuyQuantity(params, m, intent)
	}

	if !numeric.IsPositive(intent.Amount) {
		return errors.Wrapf(exception.ErrOrderAmountRequired, "amount: %q", intent.Amount)
	}

	params["qty"] = numeric.ToStep(intent.Amount, m.Precision.Amount)
	return nil
}

func (b *Builder) marketBuyQuantity(params map[string]any, m adapter.Market, intent adapter.OrderIntent) error {
	unified := b.opts.IsUnified()

	var quote string
	switch {
	case numeric.IsPositive(intent.Cost):
		quote = intent.Cost
	case numeric.IsPositive(intent.Price) && numeric.IsPositive(intent.Amount):
		quote = numeric.Mul(intent.Amount, intent.Price)
	case b.opts.CreateMarketBuyOrderRequiresPrice:
		return exception.ErrOrderPriceOrCostRequired
	case !numeric.IsPositive(intent.Amount):
		return errors.Wrapf(exception.ErrOrderAmountRequired, "amount: %q", intent.Amount)
	case unified:
		params["qty"] = numeric.ToStep(intent.Amount, m.Precision.Amount)
		params["marketUnit"] = marketUnitBase
		return nil
	default:
		// classic market buys are always quote sized; amount is taken as the cost
		quote = intent.Amount
	}

	params["qty"] = numeric.ToStep(quote, m.Precision.Cost)
	if unified {
		params["marketUnit"] = marketUnitQuote
	}
	return nil
}

// triggers applies the trigger decision table. At most one trigger field is set (validated).
func (b *Builder) triggers(params map[string]any, m adapter.Market, intent adapter.OrderIntent) error {
	var (
		price     string
		direction enum.TriggerDirection
		filter    string
	)

	switch {
	case len(intent.TriggerPrice) != 0:
		price, direction, filter = intent.TriggerPrice, intent.TriggerDirection, filterStopOrder
		if m.IsSpot() && direction.IsAvailable() {
			return exception.ErrOrderTriggerDirectionForbidden
		}
		if m.IsContract() && !direction.IsAvailable() {
			return exception.ErrOrderTriggerDirectionRequired
		}
	case len(intent.StopLossPrice) != 0:
		price, direction, filter = intent.StopLossPrice, stopLossDirection(intent.Side), filterTPSL
		params["reduceOnly"] = true
	case len(intent.TakeProfitPrice) != 0:
		price, direction, filter = intent.TakeProfitPrice, takeProfitDirection(intent.Side), filterTPSL
		params["reduceOnly"] = true
	}

	if intent.ReduceOnly {
		params["reduceOnly"] = true
	}

	if len(price) == 0 {
		return nil
	}

	params["triggerPrice"] = numeric.RoundToStep(price, m.Precision.Price)
	if m.IsSpot() {
		params["orderFilter"] = filter
		delete(params, "reduceOnly")
	}

	// spot generic triggers carry no direction; spot TP/SL keep the implied one so the role
	// survives the venue echo
	if direction.IsAvailable() {
		params["triggerDirection"] = wireTriggerDirection(direction)
	}
	return nil
}

// Amend builds an amend-order request.
func (b *Builder) Amend(intent adapter.AmendIntent) (adapter.Request, error) {
	m, err := b.market(intent.Symbol)
	if err != nil {
		return adapter.Request{}, err
	}

	params, err := identify(m, intent.ID, intent.ClientOrderID)
	if err != nil {
		return adapter.Request{}, err
	}

	if len(intent.Amount) != 0 {
		params["qty"] = numeric.ToStep(intent.Amount, m.Precision.Amount)
	}

	for key, price := range map[string]string{
		"price":        intent.Price,
		"triggerPrice": intent.TriggerPrice,
		"stopLoss":     intent.StopLoss,
		"takeProfit":   intent.TakeProfit,
	} {
		if len(price) != 0 {
			params[key] = numeric.RoundToStep(price, m.Precision.Price)
		}
	}

	return adapter.Request{Category: m.Kind, Params: params}, nil
}

// Cancel builds a cancel-order request.
func (b *Builder) Cancel(intent adapter.CancelIntent) (adapter.Request, error) {
	m, err := b.market(intent.Symbol)
	if err != nil {
		return adapter.Request{}, err
	}

	params, err := identify(m, intent.ID, intent.ClientOrderID)
	if err != nil {
		return adapter.Request{}, err
	}

	if m.IsSpot() && intent.Trigger {
		params["orderFilter"] = filterStopOrder
	}

	return adapter.Request{Category: m.Kind, Params: params}, nil
}

func identify(m adapter.Market, id, clientID string) (map[string]any, error) {
	params := map[string]any{
		"category": m.Kind.String(),
		"symbol":   m.ID,
	}

	switch {
	case len(id) != 0:
		params["orderId"] = id
	case len(clientID) != 0:
		params["orderLinkId"] = clientID
	default:
		return nil, exception.ErrOrderIDRequired
	}

	return params, nil
}
