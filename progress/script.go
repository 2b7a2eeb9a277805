package progress

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Script variable names a tuning script may define. Anything omitted keeps
// its default.
var ruleVars = []string{
	"brush_clean",
	"brush_health",
	"sweet_clean",
	"sweet_health",
	"healthy_clean",
	"healthy_health_bonus",
}

// LoadRules runs a tengo tuning script and returns DefaultRules with any
// overrides the script defines. The script runs once at load time; the
// transition logic itself stays pure Go.
func LoadRules(src []byte) (Rules, error) {
	rules := DefaultRules()
	if len(src) == 0 {
		return rules, nil
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Run()
	if err != nil {
		return rules, fmt.Errorf("progress: run rules script: %w", err)
	}

	for _, name := range ruleVars {
		v := compiled.Get(name)
		if v == nil || v.IsUndefined() {
			continue
		}
		val := v.Float()
		if val < 0 {
			return rules, fmt.Errorf("progress: rules script: %s must be >= 0, got %v", name, val)
		}
		switch name {
		case "brush_clean":
			rules.BrushClean = val
		case "brush_health":
			rules.BrushHealth = val
		case "sweet_clean":
			rules.SweetClean = val
		case "sweet_health":
			rules.SweetHealth = val
		case "healthy_clean":
			rules.HealthyClean = val
		case "healthy_health_bonus":
			rules.HealthyHealthBonus = val
		}
	}
	return rules, nil
}
