package xcsf

import (
	"bytes"
	"io"
	"math"

	"github.com/gofrs/uuid"
)

// Cl is the population element: a condition-action-prediction rule plus the
// bookkeeping fields its lifecycle and the EA need (spec §3).
type Cl struct {
	ID uuid.UUID // stable identity, survives slice-position churn under deletion/insertion.

	Condition  Condition
	Action     Action
	Prediction Prediction

	Err  float64 // exponential moving average of loss.
	Fit  float64 // fitness in (0,1].
	Num  int     // numerosity.
	Exp  int     // experience: count of Update calls.
	Size float64 // smoothed estimate of the macro-set size this classifier participates in.
	Time int64   // logical time of the last EA event touching this classifier.
	Age  int64   // creation time.
	M    bool    // transient match flag for the current input.

	mu []float64 // self-adaptive mutation rates, one per mutable component.
}

// samTypes is the fixed scheme assignment for a classifier's three
// self-adaptive mutation rates: condition, action, prediction, each
// log-normal per sam.c's default configuration.
var samTypes = []samScheme{samLogNormal, samLogNormal, samLogNormal}

// newClassifier allocates an empty classifier with fresh condition/action/
// prediction components of the types named in p, ready for Cover.
func newClassifier(p *Parameters, t int64) *Cl {
	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.Nil
	}
	return &Cl{
		ID:         id,
		Condition:  newCondition(p.ConditionType, p),
		Action:     newAction(p.ActionType, p),
		Prediction: newPrediction(p.PredictionType, p),
		Age:        t,
		mu:         samInit(p.RNG, samTypes),
	}
}

// Cover initialises the classifier to match x, taking action a, with fresh
// lifecycle statistics (spec §4.5).
func (c *Cl) Cover(p *Parameters, x []float64, a int, t int64) {
	c.Condition.Cover(x)
	c.Action.Cover(x, []int{a})
	c.Err = p.InitError
	c.Fit = p.InitFitness
	c.Num = 1
	c.Exp = 0
	c.Size = 1
	c.Time = t
	c.Age = t
}

// Update applies one online training step: prediction update and error/size
// EMA maintenance (spec §4.5).
func (c *Cl) Update(p *Parameters, x, y []float64, setNum int) {
	c.Exp++
	if float64(c.Exp)*p.Beta < 1 {
		c.Size = float64(setNum)
	} else {
		c.Size += p.Beta * (float64(setNum) - c.Size)
	}
	c.Prediction.Update(x, y)
	loss := predictionLoss(c.Prediction.Output(), y)
	if float64(c.Exp)*p.Beta < 1 {
		c.Err = (c.Err*float64(c.Exp-1) + loss) / float64(c.Exp)
	} else {
		c.Err += p.Beta * (loss - c.Err)
	}
	if c.Err < 0 {
		c.Err = 0
	}
}

// predictionLoss is the mean absolute error across output dimensions, the
// loss function xcs_supervised.c threads through as xcsf->loss_ptr for the
// default (non-pluggable, in-scope-for-the-core) case.
func predictionLoss(pred, y []float64) float64 {
	if len(pred) == 0 {
		return 0
	}
	sum := 0.0
	for i := range y {
		d := pred[i] - y[i]
		sum += math.Abs(d)
	}
	return sum / float64(len(y))
}

// Acc returns the classifier's accuracy on the exponential curve of spec
// §4.5: 1 below EPS_0, decaying as a power law above it.
func (c *Cl) Acc(p *Parameters) float64 {
	if c.Err < p.Eps0 {
		return 1
	}
	return p.Alpha * math.Pow(c.Err/p.Eps0, -p.Nu)
}

// Subsumes reports whether c is experienced and accurate enough, and its
// condition general enough, to subsume other (spec §4.5).
func (c *Cl) Subsumes(p *Parameters, other *Cl) bool {
	return float64(c.Exp) >= p.ThetaSub &&
		c.Err < p.Eps0 &&
		c.Action.Value() == other.Action.Value() &&
		c.Condition.General(other.Condition)
}

// Copy returns an independent classifier: mutating the copy never affects c.
func (c *Cl) Copy() *Cl {
	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.Nil
	}
	mu := make([]float64, len(c.mu))
	copy(mu, c.mu)
	return &Cl{
		ID:         id,
		Condition:  c.Condition.Copy(),
		Action:     c.Action.Copy(),
		Prediction: c.Prediction.Copy(),
		Err:        c.Err,
		Fit:        c.Fit,
		Num:        c.Num,
		Exp:        c.Exp,
		Size:       c.Size,
		Time:       c.Time,
		Age:        c.Age,
		mu:         mu,
	}
}

// sameRule reports whether c and other have an identical condition and
// action, the criterion the EA uses to merge an offspring into an existing
// macro-classifier by numerosity bump instead of inserting a duplicate
// (spec §4.8).
func (c *Cl) sameRule(other *Cl) bool {
	if c.Action.Value() != other.Action.Value() || c.Condition.Type() != other.Condition.Type() {
		return false
	}
	var a, b bytes.Buffer
	if _, err := c.Condition.WriteTo(&a); err != nil {
		return false
	}
	if _, err := other.Condition.WriteTo(&b); err != nil {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// writeTo serializes the classifier's variant tags, component payloads and
// fixed fields (spec §6's per-classifier snapshot layout).
func (c *Cl) writeTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeUint8(w, uint8(c.Condition.Type()))
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeUint8(w, uint8(c.Action.Type()))
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeUint8(w, uint8(c.Prediction.Type()))
	total += n
	if err != nil {
		return total, err
	}
	idn, err := w.Write(c.ID.Bytes())
	total += int64(idn)
	if err != nil {
		return total, err
	}
	n, err = c.Condition.WriteTo(w)
	total += n
	if err != nil {
		return total, err
	}
	n, err = c.Action.WriteTo(w)
	total += n
	if err != nil {
		return total, err
	}
	n, err = c.Prediction.WriteTo(w)
	total += n
	if err != nil {
		return total, err
	}
	for _, v := range []float64{c.Err, c.Fit, c.Size} {
		n, err = writeFloat64(w, v)
		total += n
		if err != nil {
			return total, err
		}
	}
	for _, v := range []int64{int64(c.Num), int64(c.Exp), c.Time, c.Age} {
		n, err = writeInt64(w, v)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = writeFloat64Slice(w, c.mu)
	total += n
	return total, err
}

// readClassifier deserializes one classifier written by (*Cl).writeTo.
func readClassifier(r io.Reader, p *Parameters) (*Cl, int64, error) {
	var total int64
	condTag, n, err := readUint8(r)
	total += n
	if err != nil {
		return nil, total, err
	}
	actTag, n, err := readUint8(r)
	total += n
	if err != nil {
		return nil, total, err
	}
	predTag, n, err := readUint8(r)
	total += n
	if err != nil {
		return nil, total, err
	}
	var idBuf [16]byte
	nn, err := io.ReadFull(r, idBuf[:])
	total += int64(nn)
	if err != nil {
		return nil, total, err
	}
	c := &Cl{
		ID:         uuid.Must(uuid.FromBytes(idBuf[:])),
		Condition:  newCondition(ConditionType(condTag), p),
		Action:     newAction(ActionType(actTag), p),
		Prediction: newPrediction(PredictionType(predTag), p),
	}
	n, err = c.Condition.ReadFrom(r)
	total += n
	if err != nil {
		return nil, total, err
	}
	n, err = c.Action.ReadFrom(r)
	total += n
	if err != nil {
		return nil, total, err
	}
	n, err = c.Prediction.ReadFrom(r)
	total += n
	if err != nil {
		return nil, total, err
	}
	vals := make([]float64, 3)
	for i := range vals {
		vals[i], n, err = readFloat64(r)
		total += n
		if err != nil {
			return nil, total, err
		}
	}
	c.Err, c.Fit, c.Size = vals[0], vals[1], vals[2]
	ivals := make([]int64, 4)
	for i := range ivals {
		ivals[i], n, err = readInt64(r)
		total += n
		if err != nil {
			return nil, total, err
		}
	}
	c.Num, c.Exp, c.Time, c.Age = int(ivals[0]), int(ivals[1]), ivals[2], ivals[3]
	c.mu, n, err = readFloat64Slice(r)
	total += n
	return c, total, err
}
