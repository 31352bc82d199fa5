package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a lenient float64 used for backend metrics.
// It accepts JSON numbers, numeric strings and null. Anything else decodes to 0.
type Number float64

// Float returns the value as a float64, with NaN and Inf mapped to 0.
func (n Number) Float() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// UnmarshalJSON never returns an error.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
		if len(data) == 0 {
			return nil
		}
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = Number(f)
	return nil
}

// ButtonClicks maps a button key (1..5) to its click count.
type ButtonClicks map[int]float64

// UnmarshalJSON decodes an object keyed by integer strings.
// Keys that are not integers are dropped and values are decoded leniently.
func (b *ButtonClicks) UnmarshalJSON(data []byte) error {
	var raw map[string]Number
	if err := json.Unmarshal(data, &raw); err != nil {
		*b = nil
		return nil
	}

	out := make(ButtonClicks, len(raw))
	for k, v := range raw {
		key, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			continue
		}
		out[key] = v.Float()
	}
	*b = out
	return nil
}
