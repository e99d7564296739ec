package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Adidadi0112/peptide-opt/pkg/peptideopt"
)

func loadRunRequestFromConfig(path string) (peptideopt.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return peptideopt.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return peptideopt.RunRequest{}, err
	}

	var req peptideopt.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["engine"]); ok {
		req.Engine = v
	}
	if v, ok := asInt(raw["motif_index"]); ok {
		req.MotifIndex = v
	}
	if v, ok := asBool(raw["best_of_catalog"]); ok {
		req.BestOfCatalog = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asFloat64(raw["crossover_prob"]); ok {
		req.CrossoverProb = v
	}
	if v, ok := asFloat64(raw["mutation_prob"]); ok {
		req.MutationProb = v
	}
	if v, ok := asInt(raw["tournament_size"]); ok {
		req.TournamentSize = v
	}
	if v, ok := asString(raw["crossover"]); ok {
		req.Crossover = v
	}
	if v, ok := asInt(raw["min_length"]); ok {
		req.MinLength = v
	}
	if v, ok := asInt(raw["max_length"]); ok {
		req.MaxLength = v
	}
	if v, ok := asString(raw["strategy"]); ok {
		req.Strategy = v
	}
	if v, ok := asString(raw["elitism"]); ok {
		req.Elitism = v
	}
	if v, ok := asBool(raw["disable_validity"]); ok {
		req.DisableValidity = v
	}
	if v, ok := asInt(raw["validity_retries"]); ok {
		req.ValidityRetries = v
	}
	if v, ok := asInt(raw["iterations"]); ok {
		req.Iterations = v
	}
	if v, ok := asInt(raw["neighbourhood_size"]); ok {
		req.NeighbourhoodSize = v
	}
	if v, ok := asInt(raw["tabu_length"]); ok {
		req.TabuLength = v
	}
	if v, ok := asFloat64(raw["aspiration_margin"]); ok {
		req.AspirationMargin = v
	}
	if v, ok := asInt(raw["reheat_interval"]); ok {
		req.ReheatInterval = v
	}

	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func overrideFromFlags(req *peptideopt.RunRequest, set map[string]bool, flagValue map[string]any) error {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "run-id":
			req.RunID = v.(string)
		case "engine":
			req.Engine = v.(string)
		case "motif":
			req.MotifIndex = v.(int)
		case "best-of-catalog":
			req.BestOfCatalog = v.(bool)
		case "seed":
			req.Seed = v.(int64)
		case "pop":
			req.Population = v.(int)
		case "gens":
			req.Generations = v.(int)
		case "crossover-prob":
			req.CrossoverProb = v.(float64)
		case "mutation-prob":
			req.MutationProb = v.(float64)
		case "tournament":
			req.TournamentSize = v.(int)
		case "crossover":
			req.Crossover = v.(string)
		case "min-len":
			req.MinLength = v.(int)
		case "max-len":
			req.MaxLength = v.(int)
		case "strategy":
			req.Strategy = v.(string)
		case "elitism":
			req.Elitism = v.(string)
		case "no-validity":
			req.DisableValidity = v.(bool)
		case "validity-retries":
			req.ValidityRetries = v.(int)
		case "iterations":
			req.Iterations = v.(int)
		case "neighbourhood":
			req.NeighbourhoodSize = v.(int)
		case "tabu-length":
			req.TabuLength = v.(int)
		case "aspiration-margin":
			req.AspirationMargin = v.(float64)
		case "reheat-interval":
			req.ReheatInterval = v.(int)
		}
	}
	return nil
}

func loadOrDefaultRunRequest(configPath string) (peptideopt.RunRequest, error) {
	if configPath == "" {
		return peptideopt.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return peptideopt.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}
