package xcsf

import (
	"fmt"

	"github.com/gosuri/uitable"
)

// Print returns a human-readable dump of the population: one row per
// macro-classifier, plus a summary line, using gosuri/uitable the way
// cmd/naneatviewer renders its species/organism tables. Non-verbose
// omits the per-classifier rows and only prints the summary.
func (x *Xcsf) Print(verbose bool) string {
	var out string
	out += fmt.Sprintf("xcsf: pop_size=%d macro=%d trial=%d\n",
		x.Pop.numSum(), x.Pop.sizeMacro(), x.trial)

	if !verbose {
		return out
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.Wrap = false
	table.AddRow("#", "Action", "Num", "Exp", "Fit", "Err", "Size", "Cond", "Pred")
	for i, c := range x.Pop.Members {
		table.AddRow(
			i,
			c.Action.Value(),
			c.Num,
			c.Exp,
			fmt.Sprintf("%.4f", c.Fit),
			fmt.Sprintf("%.4f", c.Err),
			fmt.Sprintf("%.2f", c.Size),
			conditionTypeName(c.Condition.Type()),
			predictionTypeName(c.Prediction.Type()),
		)
	}
	out += table.String()
	out += "\n"
	return out
}

func conditionTypeName(t ConditionType) string {
	switch t {
	case CondDummy:
		return "dummy"
	case CondHyperrectangle:
		return "hyperrectangle"
	case CondEllipsoid:
		return "ellipsoid"
	case CondTernary:
		return "ternary"
	case CondNeural:
		return "neural"
	case CondDGP:
		return "dgp"
	case CondGPTree:
		return "gptree"
	default:
		return "unknown"
	}
}

func predictionTypeName(t PredictionType) string {
	switch t {
	case PredConstant:
		return "constant"
	case PredNLMS:
		return "nlms"
	case PredRLS:
		return "rls"
	case PredNeural:
		return "neural"
	default:
		return "unknown"
	}
}
