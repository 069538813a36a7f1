package xcsf

import (
	"io"
	"os"
)

const snapshotMagic = "XCSF"
const snapshotVersion uint32 = 1

// Save writes a whole-population binary snapshot to path: magic, version,
// parameters in a fixed schema, then the population (spec §6). The RNG
// stream itself is not part of the schema — only the parameters that shape
// classifier construction are round-tripped; a Load'ed handle gets a fresh
// default-seeded RNG.
func (x *Xcsf) Save(path string) (err error) {
	defer recoverInvariant(&err)
	f, cerr := os.Create(path)
	if cerr != nil {
		return persistenceError("opening snapshot for write", cerr)
	}
	defer f.Close()

	if _, err := io.WriteString(f, snapshotMagic); err != nil {
		return persistenceError("writing snapshot magic", err)
	}
	if _, err := writeUint32(f, snapshotVersion); err != nil {
		return persistenceError("writing snapshot version", err)
	}
	if err := writeParameters(f, x.Params); err != nil {
		return persistenceError("writing parameters", err)
	}
	if _, err := writeUint32(f, uint32(len(x.Pop.Members))); err != nil {
		return persistenceError("writing population count", err)
	}
	for _, c := range x.Pop.Members {
		if _, err := c.writeTo(f); err != nil {
			return persistenceError("writing classifier", err)
		}
	}
	return nil
}

// Load reads a snapshot written by Save and returns a ready-to-use handle
// (spec §6).
func Load(path string) (x *Xcsf, err error) {
	defer recoverInvariant(&err)
	f, oerr := os.Open(path)
	if oerr != nil {
		return nil, persistenceError("opening snapshot for read", oerr)
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return nil, persistenceError("reading snapshot magic", err)
	}
	if string(magic[:]) != snapshotMagic {
		return nil, persistenceError("not an xcsf snapshot", nil)
	}
	version, _, err := readUint32(f)
	if err != nil {
		return nil, persistenceError("reading snapshot version", err)
	}
	if version != snapshotVersion {
		return nil, persistenceError("unsupported snapshot version", nil)
	}
	p, err := readParameters(f)
	if err != nil {
		return nil, persistenceError("reading parameters", err)
	}
	if verr := p.Validate(); verr != nil {
		return nil, verr
	}
	count, _, err := readUint32(f)
	if err != nil {
		return nil, persistenceError("reading population count", err)
	}
	pop := newPopulation()
	for i := uint32(0); i < count; i++ {
		c, _, cerr := readClassifier(f, p)
		if cerr != nil {
			return nil, persistenceError("reading classifier", cerr)
		}
		pop.insert(c)
	}
	return &Xcsf{Params: p, Pop: pop}, nil
}

func writeParameters(w io.Writer, p *Parameters) error {
	ints := []int64{
		int64(p.PopSize), int64(p.MaxTrials), int64(p.PerfTrials),
		int64(p.XDim), int64(p.YDim), int64(p.NActions),
		int64(p.Lambda), int64(p.EASelectType),
		int64(boolToInt(p.DoGASubsumption)), int64(boolToInt(p.DoSetSubsumption)),
		int64(p.ConditionType), int64(p.ActionType), int64(p.PredictionType),
		int64(p.CondTernaryBits),
		int64(boolToInt(p.Parallel)), int64(p.NumWorkers),
		int64(boolToInt(p.Explore)),
	}
	for _, v := range ints {
		if _, err := writeInt64(w, v); err != nil {
			return err
		}
	}
	floats := []float64{
		p.ThetaEA, p.PCrossover, p.EASelectSize, p.PMutation,
		p.Alpha, p.Nu, p.Beta, p.Eps0,
		p.ThetaSub, p.ThetaDel, p.Delta,
		p.InitFitness, p.InitError, p.Gamma,
		p.CondHyperrectMutation, p.CondTernaryPHash,
		p.PredNLMSEta, p.PredRLSLambda, p.PredRLSEpsilonInit,
	}
	for _, v := range floats {
		if _, err := writeFloat64(w, v); err != nil {
			return err
		}
	}
	hidden := make([]float64, len(p.CondNeuralHidden))
	for i, h := range p.CondNeuralHidden {
		hidden[i] = float64(h)
	}
	_, err := writeFloat64Slice(w, hidden)
	return err
}

func readParameters(r io.Reader) (*Parameters, error) {
	p := &Parameters{}
	ints := make([]int64, 17)
	for i := range ints {
		v, _, err := readInt64(r)
		if err != nil {
			return nil, err
		}
		ints[i] = v
	}
	p.PopSize = int(ints[0])
	p.MaxTrials = int(ints[1])
	p.PerfTrials = int(ints[2])
	p.XDim = int(ints[3])
	p.YDim = int(ints[4])
	p.NActions = int(ints[5])
	p.Lambda = int(ints[6])
	p.EASelectType = SelectType(ints[7])
	p.DoGASubsumption = ints[8] != 0
	p.DoSetSubsumption = ints[9] != 0
	p.ConditionType = ConditionType(ints[10])
	p.ActionType = ActionType(ints[11])
	p.PredictionType = PredictionType(ints[12])
	p.CondTernaryBits = int(ints[13])
	p.Parallel = ints[14] != 0
	p.NumWorkers = int(ints[15])
	p.Explore = ints[16] != 0

	floats := make([]float64, 19)
	for i := range floats {
		v, _, err := readFloat64(r)
		if err != nil {
			return nil, err
		}
		floats[i] = v
	}
	p.ThetaEA, p.PCrossover, p.EASelectSize, p.PMutation = floats[0], floats[1], floats[2], floats[3]
	p.Alpha, p.Nu, p.Beta, p.Eps0 = floats[4], floats[5], floats[6], floats[7]
	p.ThetaSub, p.ThetaDel, p.Delta = floats[8], floats[9], floats[10]
	p.InitFitness, p.InitError, p.Gamma = floats[11], floats[12], floats[13]
	p.CondHyperrectMutation, p.CondTernaryPHash = floats[14], floats[15]
	p.PredNLMSEta, p.PredRLSLambda, p.PredRLSEpsilonInit = floats[16], floats[17], floats[18]

	hidden, _, err := readFloat64Slice(r)
	if err != nil {
		return nil, err
	}
	p.CondNeuralHidden = make([]int, len(hidden))
	for i, h := range hidden {
		p.CondNeuralHidden[i] = int(h)
	}
	p.RNG = NewRNG(1)
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
