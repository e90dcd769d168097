package classify

// Display scales for gauge fill.
const (
	TDSScalePPM       = 1000.0
	PHScale           = 14.0
	TurbidityScaleNTU = 10.0
)

// Gauge is a measurement prepared for display.
type Gauge struct {
	Value       float64 `json:"value"`
	Unit        string  `json:"unit,omitempty"`
	Result      Result  `json:"result"`
	FillPercent float64 `json:"fill_percent"`
}

// NewGauge builds a gauge, clamping the bar fill to [1, 100].
func NewGauge(value, scale float64, unit string, r Result) Gauge {
	return Gauge{
		Value:       value,
		Unit:        unit,
		Result:      r,
		FillPercent: clamp(value/scale*100, 1, 100),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
