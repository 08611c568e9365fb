package enum

// PositionSide long, short
type PositionSide uint8

const (
	_position_side_beg PositionSide = iota
	PositionSideLong
	PositionSideShort
	_position_side_end
)

var positionSideNames = []string{"", "long", "short"}

func (s PositionSide) IsAvailable() bool {
	return s > _position_side_beg && s < _position_side_end
}

func (s PositionSide) String() string {
	return text(positionSideNames, int(s))
}

func (s PositionSide) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarginMode cross, isolated
type MarginMode uint8

const (
	_margin_mode_beg MarginMode = iota
	MarginModeCross
	MarginModeIsolated
	_margin_mode_end
)

var marginModeNames = []string{"", "cross", "isolated"}

func (m MarginMode) IsAvailable() bool {
	return m > _margin_mode_beg && m < _margin_mode_end
}

func (m MarginMode) String() string {
	return text(marginModeNames, int(m))
}

func (m MarginMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func ParseMarginMode(s string) (MarginMode, bool) {
	i, ok := lookup(marginModeNames, s)
	return MarginMode(i), ok
}

// AccountGeneration unified, classic
type AccountGeneration uint8

const (
	_account_generation_beg AccountGeneration = iota
	AccountGenerationUnified
	AccountGenerationClassic
	_account_generation_end
)

var accountGenerationNames = []string{"", "unified", "classic"}

func (g AccountGeneration) IsAvailable() bool {
	return g > _account_generation_beg && g < _account_generation_end
}

func (g AccountGeneration) String() string {
	return text(accountGenerationNames, int(g))
}

func ParseAccountGeneration(s string) (AccountGeneration, bool) {
	i, ok := lookup(accountGenerationNames, s)
	return AccountGeneration(i), ok
}
