package ui

import (
	"fmt"
	"math"
	"strconv"

	"forest-sim/internal/core"
)

// MinPanelHeight is the smallest height the HUD panel is drawn at; windows
// showing the HUD should be at least this tall.
const MinPanelHeight = 420

const (
	defaultFloatStep = 0.05
	defaultLogStep   = 10
)

// stepFloat returns the value one button press away from current, clamped to
// the control bounds. Logarithmic controls multiply or divide by Step;
// complement controls divide or multiply the gap to one instead.
func stepFloat(ctrl core.ParameterControl, current float64, direction int) float64 {
	var target float64
	if ctrl.Complement {
		step := ctrl.Step
		if step <= 1 {
			step = defaultLogStep
		}
		gap := 1 - current
		if gap <= 0 {
			gap = 1 - ctrl.Max
		}
		if direction > 0 {
			gap /= step
		} else {
			gap *= step
		}
		target = 1 - gap
	} else if ctrl.Logarithmic {
		step := ctrl.Step
		if step <= 1 {
			step = defaultLogStep
		}
		if current <= 0 {
			current = ctrl.Min
		}
		if direction > 0 {
			target = current * step
		} else {
			target = current / step
		}
	} else {
		step := ctrl.Step
		if step <= 0 {
			step = defaultFloatStep
		}
		target = current + float64(direction)*step
	}
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	return target
}

func stepInt(ctrl core.ParameterControl, current, direction int) int {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	target := current + direction*step
	if ctrl.HasMin {
		if lo := int(math.Round(ctrl.Min)); target < lo {
			target = lo
		}
	}
	if ctrl.HasMax {
		if hi := int(math.Round(ctrl.Max)); target > hi {
			target = hi
		}
	}
	return target
}

// formatFloat renders logarithmic values as a power of ten, complement values
// to six places and linear values with a precision derived from the step.
func formatFloat(ctrl core.ParameterControl, value float64) string {
	if ctrl.Complement {
		return strconv.FormatFloat(value, 'f', 6, 64)
	}
	if ctrl.Logarithmic && value > 0 {
		return fmt.Sprintf("1e%.03f", math.Log10(value))
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
