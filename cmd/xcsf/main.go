package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/nguyensu/xcsf"
	"github.com/spf13/cobra"
)

var (
	configPath string
	xDim       int
	yDim       int
	nActions   int
	shuffle    bool
	savePath   string
	modelPath  string
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		if xerr, ok := err.(*xcsf.Error); ok {
			fmt.Fprintln(os.Stderr, xerr)
			return exitCodeFor(xerr)
		}
		fmt.Fprintln(os.Stderr, err)
		return 3
	}
	return 0
}

func exitCodeFor(err *xcsf.Error) int {
	switch err.Category {
	case xcsf.ErrConfiguration:
		return 1
	case xcsf.ErrPersistence:
		return 2
	default:
		return 3
	}
}

var rootCmd = &cobra.Command{
	Use:   "xcsf",
	Short: "Train, predict and score with an XCSF classifier population",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "INI configuration file path")
	rootCmd.PersistentFlags().IntVar(&xDim, "x-dim", 1, "number of input features")
	rootCmd.PersistentFlags().IntVar(&yDim, "y-dim", 1, "number of output/target dimensions")
	rootCmd.PersistentFlags().IntVar(&nActions, "n-actions", 1, "number of discrete actions (1 for supervised mode)")

	fitCmd.Flags().StringVar(&trainPath, "train", "", "training dataset CSV path (required)")
	fitCmd.Flags().StringVar(&testPath, "test", "", "optional test dataset CSV path")
	fitCmd.Flags().BoolVar(&shuffle, "shuffle", true, "sample rows randomly rather than round-robin")
	fitCmd.Flags().StringVar(&savePath, "save", "", "path to write the trained population snapshot")
	fitCmd.MarkFlagRequired("train")

	predictCmd.Flags().StringVar(&modelPath, "model", "", "trained population snapshot to load (required)")
	predictCmd.Flags().StringVar(&inputPath, "input", "", "input matrix CSV path (required)")
	predictCmd.MarkFlagRequired("model")
	predictCmd.MarkFlagRequired("input")

	scoreCmd.Flags().StringVar(&modelPath, "model", "", "trained population snapshot to load (required)")
	scoreCmd.Flags().StringVar(&testPath, "test", "", "test dataset CSV path (required)")
	scoreCmd.MarkFlagRequired("model")
	scoreCmd.MarkFlagRequired("test")

	rootCmd.AddCommand(fitCmd, predictCmd, scoreCmd)
}

var (
	trainPath string
	testPath  string
	inputPath string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Train a fresh population on a dataset and report mean training loss",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams()
		if err != nil {
			return err
		}
		engine, err := xcsf.New(params)
		if err != nil {
			return err
		}
		train, err := loadDataset(trainPath, params.XDim, params.YDim)
		if err != nil {
			return err
		}
		var test *xcsf.Dataset
		if testPath != "" {
			test, err = loadDataset(testPath, params.XDim, params.YDim)
			if err != nil {
				return err
			}
		}
		loss, err := engine.Fit(train, test, shuffle)
		if err != nil {
			return err
		}
		fmt.Printf("mean training loss: %g\n", loss)
		fmt.Print(engine.Print(false))
		if savePath != "" {
			if err := engine.Save(savePath); err != nil {
				return err
			}
		}
		return nil
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict outputs for an input matrix using a saved population",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := xcsf.Load(modelPath)
		if err != nil {
			return err
		}
		rows, err := readCSV(inputPath)
		if err != nil {
			return err
		}
		x, err := parseFloatMatrix(rows)
		if err != nil {
			return err
		}
		y, err := engine.Predict(x)
		if err != nil {
			return err
		}
		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		for _, row := range y {
			record := make([]string, len(row))
			for i, v := range row {
				record[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Report mean loss of a saved population against a test dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := xcsf.Load(modelPath)
		if err != nil {
			return err
		}
		test, err := loadDataset(testPath, engine.Params.XDim, engine.Params.YDim)
		if err != nil {
			return err
		}
		mean, err := engine.Score(test)
		if err != nil {
			return err
		}
		fmt.Printf("mean loss: %g\n", mean)
		return nil
	},
}

func loadParams() (*xcsf.Parameters, error) {
	if configPath == "" {
		return xcsf.DefaultParameters(xDim, yDim, nActions), nil
	}
	return xcsf.LoadConfig(configPath, xDim, yDim, nActions)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &xcsf.Error{Category: xcsf.ErrPersistence, Message: "opening " + path, Err: err}
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &xcsf.Error{Category: xcsf.ErrPersistence, Message: "reading " + path, Err: err}
	}
	return rows, nil
}

func parseFloatMatrix(rows [][]string) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		vals := make([]float64, len(row))
		for j, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		out[i] = vals
	}
	return out, nil
}

// loadDataset reads a CSV whose first xDim columns are features and
// remaining yDim columns are targets, one row per sample.
func loadDataset(path string, xDim, yDim int) (*xcsf.Dataset, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	full, err := parseFloatMatrix(rows)
	if err != nil {
		return nil, err
	}
	d := &xcsf.Dataset{X: make([][]float64, len(full)), Y: make([][]float64, len(full))}
	for i, row := range full {
		if len(row) != xDim+yDim {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), xDim+yDim)
		}
		d.X[i] = append([]float64{}, row[:xDim]...)
		d.Y[i] = append([]float64{}, row[xDim:]...)
	}
	return d, nil
}
