package policy

import "github.com/bincc/bincc/internal/rules"

type Action string

const (
	ActionAccept      Action = "accept"
	ActionReject      Action = "reject"
	ActionUnsupported Action = "unsupported"
)

// Verdict is the outcome of checking one card number.
type Verdict struct {
	Brand  string
	Luhn   bool
	Action Action
}

// Evaluate identifies number with engine and decides what to do with it.
func Evaluate(engine *rules.Engine, number string, requireLuhn bool) Verdict {
	if engine == nil {
		return Verdict{Action: ActionUnsupported}
	}
	brand, found := engine.Identify(number)
	luhn := engine.LuhnValid(number)
	return Verdict{
		Brand:  brand,
		Luhn:   luhn,
		Action: Decide(found, luhn, requireLuhn),
	}
}

// Decide maps a lookup to an action. An unknown brand always wins over a
// failed checksum.
func Decide(brandFound, luhnOK, requireLuhn bool) Action {
	if !brandFound {
		return ActionUnsupported
	}
	if requireLuhn && !luhnOK {
		return ActionReject
	}
	return ActionAccept
}
