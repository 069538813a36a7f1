package xcsf

// Xcsf is the engine handle: the single entry point an embedder or the CLI
// constructs and drives (spec §6). It replaces the original's global
// context — parameters and the population are fields on this value, never
// package-level state (spec §9).
type Xcsf struct {
	Params *Parameters
	Pop    *Population

	trial int64

	// Reinforcement-learning step/update state, threaded across the two
	// public calls that make up one RL trial.
	rlPending bool
	rlState   []float64
	rlM       *Set
	rlA       *Set
	rlK       *Set
	rlAction  int
}

// New builds an engine handle from params, validating them first (spec §6's
// Xcsf::new, realized as a Go constructor returning (handle, error) rather
// than aborting on a bad configuration).
func New(params *Parameters) (*Xcsf, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Xcsf{Params: params, Pop: newPopulation()}, nil
}

// Dataset is an in-memory matrix pair: n_samples rows, x_dim/y_dim columns
// each, row-major, mirroring the original's INPUT struct (spec §6).
type Dataset struct {
	X     [][]float64
	Y     [][]float64
}

func (d *Dataset) row(p *Parameters, i int) ([]float64, []float64, error) {
	if i < 0 || i >= len(d.X) {
		return nil, nil, runtimeErrorf("sample index %d out of range", i)
	}
	x := d.X[i]
	if len(x) != p.XDim {
		return nil, nil, runtimeErrorf("sample %d has x_dim %d, want %d", i, len(x), p.XDim)
	}
	var y []float64
	if d.Y != nil {
		y = d.Y[i]
		if len(y) != p.YDim {
			return nil, nil, runtimeErrorf("sample %d has y_dim %d, want %d", i, len(y), p.YDim)
		}
	}
	return x, y, nil
}

// sampleRow selects the row for trial cnt: uniformly random if shuffle,
// else round-robin, mirroring xcs_supervised_sample.
func sampleRow(rng RNG, n int, cnt int, shuffle bool) int {
	if shuffle {
		return rng.Intn(n)
	}
	return cnt % n
}

// Fit runs MAX_TRIALS supervised training trials over train and returns the
// mean training loss (spec §6's fit, grounded on xcs_supervised_fit). When
// test is non-empty, each training trial is followed by an exploit trial on
// a sampled test row; that trial may still cover, and its loss is neither
// returned nor recorded.
func (x *Xcsf) Fit(train, test *Dataset, shuffle bool) (mean float64, err error) {
	defer recoverInvariant(&err)
	if len(train.X) == 0 {
		return 0, runtimeErrorf("training dataset is empty")
	}
	var sum float64
	for cnt := 0; cnt < x.Params.MaxTrials; cnt++ {
		row := sampleRow(x.Params.RNG, len(train.X), cnt, shuffle)
		tx, ty, err := train.row(x.Params, row)
		if err != nil {
			return 0, err
		}
		x.Params.Explore = true
		loss := runSupervisedTrial(x.Params, x.Pop, tx, ty, x.trial)
		x.trial++
		sum += loss

		if test != nil && len(test.X) > 0 {
			trow := sampleRow(x.Params.RNG, len(test.X), cnt, shuffle)
			vx, vy, err := test.row(x.Params, trow)
			if err != nil {
				return 0, err
			}
			x.Params.Explore = false
			_ = runSupervisedTrial(x.Params, x.Pop, vx, vy, x.trial)
			x.trial++
		}
	}
	return sum / float64(x.Params.MaxTrials), nil
}

// Predict computes the exploit-mode prediction for every row of xMatrix
// (spec §6's predict, grounded on xcs_supervised_predict).
func (x *Xcsf) Predict(xMatrix [][]float64) (yMatrix [][]float64, err error) {
	defer recoverInvariant(&err)
	out := make([][]float64, len(xMatrix))
	for i, row := range xMatrix {
		if len(row) != x.Params.XDim {
			return nil, runtimeErrorf("row %d has x_dim %d, want %d", i, len(row), x.Params.XDim)
		}
		out[i] = runSupervisedPredict(x.Params, x.Pop, row, x.trial)
		x.trial++
	}
	return out, nil
}

// Score returns the mean loss of exploit-mode predictions against test
// (spec §6's score, grounded on xcs_supervised_score).
func (x *Xcsf) Score(test *Dataset) (mean float64, err error) {
	defer recoverInvariant(&err)
	if len(test.X) == 0 {
		return 0, runtimeErrorf("test dataset is empty")
	}
	var sum float64
	for i := range test.X {
		tx, ty, rerr := test.row(x.Params, i)
		if rerr != nil {
			return 0, rerr
		}
		pred := runSupervisedPredict(x.Params, x.Pop, tx, x.trial)
		x.trial++
		sum += predictionLoss(pred, ty)
	}
	return sum / float64(len(test.X)), nil
}

// Step begins one reinforcement-learning trial: it matches state, builds
// the prediction array, and chooses an action (argmax when exploiting,
// uniform over populated actions when exploring), holding the in-progress
// match/action sets until Update is called to close the trial out (spec
// §4.10, §6).
func (x *Xcsf) Step(state []float64) (action int, err error) {
	defer recoverInvariant(&err)
	if len(state) != x.Params.XDim {
		return 0, runtimeErrorf("state has x_dim %d, want %d", len(state), x.Params.XDim)
	}
	if x.rlPending {
		return 0, runtimeErrorf("Step called again before a prior trial's Update")
	}

	k := newSet()
	m, pa := buildMatchAndPA(x.Params, x.Pop, state, k, x.trial)
	a := chooseAction(x.Params, pa)

	x.rlPending = true
	x.rlState = state
	x.rlM = m
	x.rlA = m.actionSet(x.Pop, a)
	x.rlK = k
	x.rlAction = a
	return a, nil
}

// Update closes out the RL trial opened by Step: it computes the backup
// payoff from reward and done (bootstrapping off next's prediction array
// when the episode continues), applies it to the action set, runs the EA,
// and sweeps kills (spec §4.10 steps 6-9).
func (x *Xcsf) Update(reward float64, done bool, next []float64) (err error) {
	defer recoverInvariant(&err)
	if !x.rlPending {
		return runtimeErrorf("Update called without a pending Step")
	}
	if !done && len(next) != x.Params.XDim {
		return runtimeErrorf("next state has x_dim %d, want %d", len(next), x.Params.XDim)
	}

	payoff := reinforcementBackup(x.Params, x.Pop, reward, done, next, x.trial, x.rlK)
	updateActionSet(x.Params, x.Pop, x.rlA, x.rlState, payoff, x.trial, x.rlK)

	x.Pop.validate(x.rlK)
	x.Pop.killSweep(x.rlK)
	x.rlA.clear()
	x.rlM.clear()

	x.trial++
	x.rlPending = false
	x.rlState, x.rlM, x.rlA, x.rlK = nil, nil, nil, nil
	return nil
}
