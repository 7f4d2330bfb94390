package sim

import "math"

// Intent is the mutable record a behavior step fills in to express its
// movement, aim, and shoot decisions for one tick.
//
// X, Y, and Radius are read-only facts about the ship; the engine ignores
// any changes a behavior makes to them. Only MoveDirection, Moving,
// ShootDirection, and Shooting are copied back. The struct is flat and
// JSON-serializable: it is the only shape in which ship state crosses the
// sandbox boundary.
type Intent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`

	MoveDirection  float64 `json:"moveDirection"`
	Moving         bool    `json:"moving"`
	ShootDirection float64 `json:"shootDirection"`
	Shooting       bool    `json:"shooting"`
}

// validate rejects intents whose writable fields are not finite numbers.
// Scripts can only hand back plain values, so this is the single gate that
// keeps NaN and Inf out of the physical state.
func (in Intent) validate() error {
	if math.IsNaN(in.MoveDirection) || math.IsInf(in.MoveDirection, 0) {
		return &ContractFaultError{Field: "moveDirection", Reason: "not a finite number"}
	}
	if math.IsNaN(in.ShootDirection) || math.IsInf(in.ShootDirection, 0) {
		return &ContractFaultError{Field: "shootDirection", Reason: "not a finite number"}
	}
	return nil
}
