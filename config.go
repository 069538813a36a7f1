package xcsf

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// configKeys is the fixed set of keys the INI loader accepts, mapping each
// to a setter against a Parameters value being built. Unknown keys are
// rejected (spec §6).
var configKeys = map[string]func(p *Parameters, v string) error{
	"POP_SIZE":    intSetter(func(p *Parameters, n int) { p.PopSize = n }),
	"MAX_TRIALS":  intSetter(func(p *Parameters, n int) { p.MaxTrials = n }),
	"PERF_TRIALS": intSetter(func(p *Parameters, n int) { p.PerfTrials = n }),

	"X_DIM":     intSetter(func(p *Parameters, n int) { p.XDim = n }),
	"Y_DIM":     intSetter(func(p *Parameters, n int) { p.YDim = n }),
	"N_ACTIONS": intSetter(func(p *Parameters, n int) { p.NActions = n }),

	"THETA_EA":   floatSetter(func(p *Parameters, f float64) { p.ThetaEA = f }),
	"P_CROSSOVER": floatSetter(func(p *Parameters, f float64) { p.PCrossover = f }),
	"LAMBDA":      intSetter(func(p *Parameters, n int) { p.Lambda = n }),
	"EA_SELECT_SIZE": floatSetter(func(p *Parameters, f float64) { p.EASelectSize = f }),
	"P_MUTATION":     floatSetter(func(p *Parameters, f float64) { p.PMutation = f }),

	"ALPHA": floatSetter(func(p *Parameters, f float64) { p.Alpha = f }),
	"NU":    floatSetter(func(p *Parameters, f float64) { p.Nu = f }),
	"BETA":  floatSetter(func(p *Parameters, f float64) { p.Beta = f }),
	"EPS_0": floatSetter(func(p *Parameters, f float64) { p.Eps0 = f }),

	"THETA_SUB": floatSetter(func(p *Parameters, f float64) { p.ThetaSub = f }),
	"DO_GA_SUBSUMPTION":  boolSetter(func(p *Parameters, b bool) { p.DoGASubsumption = b }),
	"DO_SET_SUBSUMPTION": boolSetter(func(p *Parameters, b bool) { p.DoSetSubsumption = b }),

	"THETA_DEL": floatSetter(func(p *Parameters, f float64) { p.ThetaDel = f }),
	"DELTA":     floatSetter(func(p *Parameters, f float64) { p.Delta = f }),

	"INIT_FITNESS": floatSetter(func(p *Parameters, f float64) { p.InitFitness = f }),
	"INIT_ERROR":   floatSetter(func(p *Parameters, f float64) { p.InitError = f }),

	"GAMMA": floatSetter(func(p *Parameters, f float64) { p.Gamma = f }),

	"COND_HYPERRECT_MUTATION": floatSetter(func(p *Parameters, f float64) { p.CondHyperrectMutation = f }),
	"COND_TERNARY_BITS":       intSetter(func(p *Parameters, n int) { p.CondTernaryBits = n }),
	"COND_TERNARY_P_HASH":     floatSetter(func(p *Parameters, f float64) { p.CondTernaryPHash = f }),

	"PRED_NLMS_ETA":          floatSetter(func(p *Parameters, f float64) { p.PredNLMSEta = f }),
	"PRED_RLS_LAMBDA":        floatSetter(func(p *Parameters, f float64) { p.PredRLSLambda = f }),
	"PRED_RLS_EPSILON_INIT":  floatSetter(func(p *Parameters, f float64) { p.PredRLSEpsilonInit = f }),

	"PARALLEL":    boolSetter(func(p *Parameters, b bool) { p.Parallel = b }),
	"NUM_WORKERS": intSetter(func(p *Parameters, n int) { p.NumWorkers = n }),

	"CONDITION_TYPE":  variantSetter(func(p *Parameters, n int) { p.ConditionType = ConditionType(n) }),
	"ACTION_TYPE":      variantSetter(func(p *Parameters, n int) { p.ActionType = ActionType(n) }),
	"PREDICTION_TYPE":  variantSetter(func(p *Parameters, n int) { p.PredictionType = PredictionType(n) }),
}

func intSetter(set func(p *Parameters, n int)) func(p *Parameters, v string) error {
	return func(p *Parameters, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return configErrorf("invalid integer %q", v)
		}
		set(p, n)
		return nil
	}
}

func variantSetter(set func(p *Parameters, n int)) func(p *Parameters, v string) error {
	return intSetter(set)
}

func floatSetter(set func(p *Parameters, f float64)) func(p *Parameters, v string) error {
	return func(p *Parameters, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return configErrorf("invalid float %q", v)
		}
		set(p, f)
		return nil
	}
}

func boolSetter(set func(p *Parameters, b bool)) func(p *Parameters, v string) error {
	return func(p *Parameters, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return configErrorf("invalid boolean %q", v)
		}
		set(p, b)
		return nil
	}
}

// LoadConfig parses an INI-style key=value file into a Parameters value
// seeded from DefaultParameters(xDim, yDim, nActions), rejecting unknown
// keys (spec §6).
func LoadConfig(path string, xDim, yDim, nActions int) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, persistenceError("opening config file", err)
	}
	defer f.Close()
	return parseConfig(f, DefaultParameters(xDim, yDim, nActions))
}

func parseConfig(r io.Reader, p *Parameters) (*Parameters, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			continue // section headers are accepted but ignored.
		}
		idx := strings.IndexAny(line, "=:")
		if idx < 0 {
			return nil, configErrorf("malformed config line %d: %q", lineNo, line)
		}
		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		val := strings.TrimSpace(line[idx+1:])
		set, ok := configKeys[key]
		if !ok {
			return nil, configErrorf("unknown config key %q at line %d", key, lineNo)
		}
		if err := set(p, val); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, persistenceError("reading config file", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
