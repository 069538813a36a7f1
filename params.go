package xcsf

// SelectType enumerates the EA parent-selection scheme.
type SelectType int

const (
	// SelectRoulette picks parents with probability proportional to fitness.
	SelectRoulette SelectType = iota
	// SelectTournament samples a fraction of the set with replacement and
	// picks the fittest.
	SelectTournament
)

// ConditionType, ActionType and PredictionType tag which concrete variant a
// classifier's component is. They double as the on-disk variant identifier
// in the binary snapshot format (spec §6, §9).
type ConditionType uint8

const (
	CondDummy ConditionType = iota
	CondHyperrectangle
	CondEllipsoid
	CondTernary
	CondNeural
	CondDGP
	CondGPTree
)

type ActionType uint8

const (
	ActionInteger ActionType = iota
	ActionNeural
)

type PredictionType uint8

const (
	PredConstant PredictionType = iota
	PredNLMS
	PredRLS
	PredNeural
)

// Parameters is the single, explicitly enumerated configuration bag
// consumed by every operation in the engine (spec §4.1). It is read-mostly
// once an Xcsf handle is built, save for Explore, which the trial
// orchestrators flip once per trial.
type Parameters struct {
	// Population / run control.
	PopSize    int // POP_SIZE: maximum total numerosity.
	MaxTrials  int // MAX_TRIALS.
	PerfTrials int // PERF_TRIALS: rolling performance-report window.

	// Dimensions.
	XDim      int // x_dim.
	YDim      int // y_dim.
	NActions  int // n_actions. 1 in supervised mode.

	// Evolutionary algorithm.
	ThetaEA      float64    // THETA_EA: inverse trigger rate.
	PCrossover   float64    // P_CROSSOVER.
	Lambda       int        // LAMBDA: offspring per EA call, typically 2.
	EASelectType SelectType // EA_SELECT_TYPE.
	EASelectSize float64    // EA_SELECT_SIZE: tournament size as a fraction of the set.
	PMutation    float64    // P_MUTATION: base mutation probability (integer action).

	// Fitness / accuracy.
	Alpha float64 // ALPHA.
	Nu    float64 // NU.
	Beta  float64 // BETA.
	Eps0  float64 // EPS_0.

	// Subsumption.
	ThetaSub        float64 // THETA_SUB.
	DoGASubsumption bool    // DO_GA_SUBSUMPTION.
	DoSetSubsumption bool   // DO_SET_SUBSUMPTION.

	// Deletion.
	ThetaDel float64 // THETA_DEL.
	Delta    float64 // DELTA.

	// New-classifier defaults.
	InitFitness float64 // INIT_FITNESS.
	InitError   float64 // INIT_ERROR.

	// Reinforcement learning.
	Gamma float64 // discount factor for RL payoff backup.

	// Condition / action / prediction variant selection.
	ConditionType  ConditionType
	ActionType     ActionType
	PredictionType PredictionType

	// Condition-variant knobs.
	CondHyperrectMutation float64 // spread of Gaussian perturbation, hyperrectangle/ellipsoid.
	CondTernaryBits       int     // discretisation bits per input dim, ternary condition.
	CondTernaryPHash      float64 // per-position '#' bias on cover, ternary condition.
	CondNeuralHidden      []int   // hidden layer widths of the neural condition/action/prediction nets; DGP sizes its node graph from them.

	// Prediction-variant knobs.
	PredNLMSEta float64 // learning rate eta, NLMS.
	PredRLSLambda float64 // forgetting factor, RLS (<=1).
	PredRLSEpsilonInit float64 // scale of the initial inverse-covariance matrix, RLS.

	// Runtime / concurrency. Accepted by config parsing and round-tripped
	// through snapshots for forward compatibility, but not yet consulted
	// by any kernel: match/PA/update all run sequentially regardless of
	// Parallel's value (spec §5 Non-goals — see DESIGN.md).
	Parallel   bool // reserved: no kernel currently branches on this.
	NumWorkers int  // reserved: has no effect until Parallel is wired up.
	Explore    bool // current-trial explore/exploit flag, mutated per trial.

	RNG RNG
}

// DefaultParameters returns a Parameters populated with the reference
// values used throughout xcsf's literature and the original C
// implementation's param.c defaults, analogous to the teacher's
// NewConfigurationSimple constructor.
func DefaultParameters(xDim, yDim, nActions int) *Parameters {
	return &Parameters{
		PopSize:    200,
		MaxTrials:  100000,
		PerfTrials: 1000,

		XDim:     xDim,
		YDim:     yDim,
		NActions: nActions,

		ThetaEA:      25,
		PCrossover:   0.8,
		Lambda:       2,
		EASelectType: SelectRoulette,
		EASelectSize: 0.4,
		PMutation:    0.05,

		Alpha: 0.1,
		Nu:    5,
		Beta:  0.1,
		Eps0:  0.01,

		ThetaSub:         100,
		DoGASubsumption:  false,
		DoSetSubsumption: false,

		ThetaDel: 20,
		Delta:    0.1,

		InitFitness: 0.01,
		InitError:   0,

		Gamma: 0.95,

		ConditionType:  CondHyperrectangle,
		ActionType:     ActionInteger,
		PredictionType: PredConstant,

		CondHyperrectMutation: 0.1,
		CondTernaryBits:       8,
		CondTernaryPHash:      0.5,
		CondNeuralHidden:      []int{10},

		PredNLMSEta:        0.1,
		PredRLSLambda:      1,
		PredRLSEpsilonInit: 1000,

		Parallel:   false,
		NumWorkers: 0,
		Explore:    true,

		RNG: NewRNG(1),
	}
}

// Validate checks dimensional and range constraints and returns a
// configuration *Error describing the first violation found, or nil.
func (p *Parameters) Validate() error {
	switch {
	case p.PopSize <= 0:
		return configErrorf("POP_SIZE must be positive, got %d", p.PopSize)
	case p.XDim <= 0:
		return configErrorf("x_dim must be positive, got %d", p.XDim)
	case p.YDim <= 0:
		return configErrorf("y_dim must be positive, got %d", p.YDim)
	case p.NActions <= 0:
		return configErrorf("n_actions must be positive, got %d", p.NActions)
	case p.Alpha <= 0:
		return configErrorf("ALPHA must be positive, got %g", p.Alpha)
	case p.Beta <= 0 || p.Beta > 1:
		return configErrorf("BETA must be in (0,1], got %g", p.Beta)
	case p.Eps0 <= 0:
		return configErrorf("EPS_0 must be positive, got %g", p.Eps0)
	case p.PCrossover < 0 || p.PCrossover > 1:
		return configErrorf("P_CROSSOVER must be in [0,1], got %g", p.PCrossover)
	case p.Lambda <= 0:
		return configErrorf("LAMBDA must be positive, got %d", p.Lambda)
	case p.EASelectType != SelectRoulette && p.EASelectType != SelectTournament:
		return configErrorf("EA_SELECT_TYPE unknown: %d", p.EASelectType)
	case p.EASelectSize <= 0 || p.EASelectSize > 1:
		return configErrorf("EA_SELECT_SIZE must be in (0,1], got %g", p.EASelectSize)
	case p.ThetaDel < 0:
		return configErrorf("THETA_DEL must be non-negative, got %g", p.ThetaDel)
	case p.Delta < 0:
		return configErrorf("DELTA must be non-negative, got %g", p.Delta)
	}
	if p.RNG == nil {
		p.RNG = NewRNG(1)
	}
	return nil
}

// tournamentSize returns ceil(EA_SELECT_SIZE * n) with a minimum of 1, the
// open-question resolution spec §9 mandates.
func (p *Parameters) tournamentSize(n int) int {
	size := int(p.EASelectSize*float64(n) + 0.9999999)
	if size < 1 {
		size = 1
	}
	if size > n {
		size = n
	}
	return size
}
