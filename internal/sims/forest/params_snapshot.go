package forest

import (
	"math"
	"strconv"

	"forest-sim/internal/core"
)

// logStep is the multiplicative HUD step of the logarithmic controls.
var logStep = math.Pow(10, 0.25)

// spreadStep halves or doubles the gap between spread and one per press.
const spreadStep = 2

func (f *Forest) Parameters() core.ParameterSnapshot {
	params := f.params
	census := f.Census()
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", f.w),
				intParam("h", "Height", f.h),
				uintParam("seed", "Seed", f.seed),
				uintParam("generation", "Generation", f.generation),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				floatParam("spread_chance", "Spread", params.SpreadChance),
				floatParam("strike_chance", "Strike", params.StrikeChance),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				floatParam("grow_chance", "Grow", params.GrowChance),
			},
		},
		{
			Name: "Speed",
			Params: []core.Parameter{
				intParam("step_divisor", "Ticks per generation", params.StepDivisor),
			},
		},
		{
			Name: "Census",
			Params: []core.Parameter{
				intParam("trees", "Trees", census.Trees()),
				intParam("burning", "Burning", census.Burning()),
				intParam("residue", "Ash and char", census.Residue()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable tunables.
func (f *Forest) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key:         "grow_chance",
			Label:       "Grow",
			Type:        core.ParamTypeFloat,
			Step:        logStep,
			Logarithmic: true,
			Min:         MinGrowChance,
			Max:         MaxGrowChance,
			HasMin:      true,
			HasMax:      true,
		},
		{
			Key:         "strike_chance",
			Label:       "Strike",
			Type:        core.ParamTypeFloat,
			Step:        logStep,
			Logarithmic: true,
			Min:         MinStrikeChance,
			Max:         MaxStrikeChance,
			HasMin:      true,
			HasMax:      true,
		},
		{
			Key:        "spread_chance",
			Label:      "Spread",
			Type:       core.ParamTypeFloat,
			Step:       spreadStep,
			Complement: true,
			Min:        MinSpreadChance,
			Max:        MaxSpreadChance,
			HasMin:     true,
			HasMax:     true,
		},
		{
			Key:    "step_divisor",
			Label:  "Ticks/gen",
			Type:   core.ParamTypeInt,
			Step:   1,
			Min:    MinStepDivisor,
			Max:    MaxStepDivisor,
			HasMin: true,
			HasMax: true,
		},
	}
}

// SetFloatParameter routes a HUD update through the clamping setters.
func (f *Forest) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "grow_chance":
		f.SetGrowChance(value)
	case "strike_chance":
		f.SetStrikeChance(value)
	case "spread_chance":
		f.SetSpreadChance(value)
	default:
		return false
	}
	return true
}

// SetIntParameter routes a HUD update through the clamping setters.
func (f *Forest) SetIntParameter(key string, value int) bool {
	if key != "step_divisor" {
		return false
	}
	f.SetStepDivisor(value)
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func uintParam(key, label string, value uint64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatUint(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'g', -1, 64),
	}
}
