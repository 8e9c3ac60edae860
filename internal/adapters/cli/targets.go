package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/andrescamacho/factory-planner-go/internal/application/production/commands"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

// parseTargets parses positional "item=rate" arguments. The item may contain
// spaces and "=" signs; the rate follows the last "=". A bare item name uses
// config.DefaultTargetRate.
func parseTargets(args []string) ([]commands.TargetRequest, error) {
	targets := make([]commands.TargetRequest, 0, len(args))

	for _, arg := range args {
		item := arg
		rate := config.DefaultTargetRate

		if idx := strings.LastIndex(arg, "="); idx >= 0 {
			item = arg[:idx]
			parsed, err := strconv.ParseFloat(strings.TrimSpace(arg[idx+1:]), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid rate in target %q: %w", arg, err)
			}
			if parsed <= 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
				return nil, fmt.Errorf("invalid rate in target %q: must be a positive number", arg)
			}
			rate = parsed
		}

		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("invalid target %q: item name is empty", arg)
		}

		targets = append(targets, commands.TargetRequest{Item: item, Rate: rate})
	}

	return targets, nil
}

// targetsFromConfig converts the configured default run
func targetsFromConfig(cfgTargets []config.TargetConfig) []commands.TargetRequest {
	targets := make([]commands.TargetRequest, 0, len(cfgTargets))
	for _, t := range cfgTargets {
		targets = append(targets, commands.TargetRequest{Item: t.Item, Rate: t.Rate})
	}
	return targets
}
