package models

import "time"

// TimestampLayout is the wire format of Snapshot.TsUTC.
const TimestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t in the snapshot wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout) + " UTC"
}

// AssetQuote is the per-asset block of a snapshot.
// Price is rounded to 2 decimals, ChgPct to 3.
type AssetQuote struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ChgPct   float64 `json:"chg_pct"`
	Volume   int64   `json:"volume"`
	VolSpike bool    `json:"vol_spike"`
}

// RankEntry is one row of the relative strength ranking, strongest first.
type RankEntry struct {
	Asset  string  `json:"asset"`
	ChgPct float64 `json:"chg_pct"`
}

// Detector carries the relative strength panel.
type Detector struct {
	Leader               string      `json:"leader"`
	Laggard              string      `json:"laggard"`
	RelativeStrengthRank []RankEntry `json:"relative_strength_rank"`
}

// RegimeView is the regime block of a snapshot; Confidence is a percentage
// rounded to one decimal.
type RegimeView struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Snapshot is the full output of one tick. Producing one advances the
// shared price state, so it is a mutation, not a query.
type Snapshot struct {
	TsUTC    string                `json:"ts_utc"`
	Assets   map[string]AssetQuote `json:"assets"`
	Detector Detector              `json:"detector"`
	Regime   RegimeView            `json:"regime"`
	Signals  []Signal              `json:"signals"`
}
