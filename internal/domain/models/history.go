package models

import "time"

// TickRow is one persisted asset observation, one row per asset per tick.
type TickRow struct {
	Ts       time.Time `json:"ts"`
	Symbol   string    `json:"symbol"`
	Price    float64   `json:"price"`
	ChgPct   float64   `json:"chg_pct"`
	Volume   int64     `json:"volume"`
	VolSpike bool      `json:"vol_spike"`
	Regime   string    `json:"regime"`
}
