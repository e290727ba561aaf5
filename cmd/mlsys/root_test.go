package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlsys/pkg/log"
	"github.com/YuminosukeSato/mlsys/report"
)

const irisARFF = `@RELATION iris
@ATTRIBUTE sepallength REAL
@ATTRIBUTE petallength REAL
@ATTRIBUTE class {setosa, versicolor}
@DATA
5.1, 1.4, setosa
4.9, 1.4, setosa
7.0, 4.7, versicolor
6.4, 4.5, versicolor
4.7, 1.3, setosa
6.9, 4.9, versicolor
5.0, 1.5, setosa
5.5, 4.0, versicolor
4.6, 1.5, setosa
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCLI_Protocols(t *testing.T) {
	data := writeFile(t, "iris.arff", irisARFF)
	test := writeFile(t, "test.arff", irisARFF)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "training",
			args: []string{"-E", "training"},
			want: []string{"Calculating accuracy on training set...", "Training set accuracy: 0.5555555555555556"},
		},
		{
			name: "static",
			args: []string{"-E", "static", test},
			want: []string{"Test set name: " + test, "Number of test instances: 9", "Test set accuracy: "},
		},
		{
			name: "random",
			args: []string{"-E", "random", "0.5", "-N"},
			want: []string{"Using normalized data", "Percentage used for training: 0.5", "Test set accuracy: "},
		},
		{
			name: "cross",
			args: []string{"-E", "cross", "3", "--repetitions", "2"},
			want: []string{"Number of folds: 3", "Rep=1, Fold=2, Accuracy=", "Mean accuracy="},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-L", "baseline", "-A", data, "-S", "5", "--log-level", "error"}, tt.args...)
			code, out, errOut := runCLI(args...)
			require.Equal(t, 0, code, errOut)
			assert.Contains(t, out, "Random seed: 5")
			assert.Contains(t, out, "Learning algorithm: baseline")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestCLI_Verbose(t *testing.T) {
	data := writeFile(t, "iris.arff", irisARFF)
	code, out, _ := runCLI("-L", "baseline", "-A", data, "-E", "training", "-V", "--log-level", "error")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Confusion matrix: (Row=target value, Col=predicted value)")
	assert.Contains(t, out, "@ATTRIBUTE versicolor CONTINUOUS")
}

func TestCLI_UsageErrors(t *testing.T) {
	data := writeFile(t, "iris.arff", irisARFF)

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no learner", []string{"-A", data, "-E", "training"}, "a learner is required"},
		{"no dataset", []string{"-L", "baseline", "-E", "training"}, "a dataset is required"},
		{"bad method", []string{"-L", "baseline", "-A", data, "-E", "bogus"}, "evaluation"},
		{"training parameter", []string{"-L", "baseline", "-A", data, "-E", "training", "7"}, "training takes no parameter"},
		{"static without file", []string{"-L", "baseline", "-A", data, "-E", "static"}, "static requires a test set file"},
		{"random fraction", []string{"-L", "baseline", "-A", data, "-E", "random", "half"}, "random requires the fraction"},
		{"cross folds", []string{"-L", "baseline", "-A", data, "-E", "cross", "x"}, "cross requires the number of folds"},
		{"extra arguments", []string{"-L", "baseline", "-A", data, "-E", "cross", "3", "4"}, "expected one evaluation parameter"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
		{"bad log level", []string{"-L", "baseline", "-A", data, "-E", "training", "--log-level", "loud"}, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.msg)
			assert.Contains(t, errOut, "mlsys -L [learner] -A [file.arff] -E cross [folds]")
		})
	}
}

func TestCLI_UnknownLearnerBeforeLoading(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.arff")

	code, out, errOut := runCLI("-L", "knn", "-A", missing, "-E", "training", "--log-level", "error")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "knn")
	assert.Contains(t, errOut, "UnrecognizedLearnerError")
	assert.NotContains(t, errOut, "missing.arff")
}

func TestCLI_ParseErrorReportsLine(t *testing.T) {
	bad := writeFile(t, "bad.arff", "@RELATION r\n@ATTRIBUTE a REAL\n@DATA\n1, 2\n")
	logFile := filepath.Join(t.TempDir(), "mlsys.log")

	code, _, _ := runCLI("-L", "baseline", "-A", bad, "-E", "training", "--log-file", logFile)
	assert.Equal(t, 1, code)

	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(raw), []byte("\n"))
	var last map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))
	assert.Equal(t, "Run failed", last["message"])
	assert.Equal(t, "ParseError", last[log.ErrorTypeKey])
	assert.Equal(t, 4.0, last[log.LineKey])
	assert.Equal(t, "cli", last[log.ComponentKey])
}

func TestCLI_ConfigFileAndOverrides(t *testing.T) {
	data := writeFile(t, "iris.arff", irisARFF)
	dir := t.TempDir()
	history := filepath.Join(dir, "runs.db")
	plot := filepath.Join(dir, "folds.png")
	cfg := writeFile(t, "run.yaml", `
arff: `+data+`
learner: baseline
evaluation:
  method: cross
  parameter: "3"
seed: 11
log:
  level: error
history: `+history+`
plot: `+plot+`
`)

	code, out, errOut := runCLI("--config", cfg)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Number of folds: 3")
	assert.Contains(t, out, "Random seed: 11")
	assert.FileExists(t, plot)

	// flags and the positional parameter win over the file
	code, out, errOut = runCLI("--config", cfg, "-S", "12", "4")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Number of folds: 4")
	assert.Contains(t, out, "Random seed: 12")

	h, err := report.OpenHistory(history, report.RunMeta{})
	require.NoError(t, err)
	defer h.Close()
	runs, err := h.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, uint64(12), runs[0].Seed)
	assert.Equal(t, uint64(11), runs[1].Seed)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "run.yaml", "learner: linear\nrepetitions: 3\nlog:\n  json: true\n  max_size_mb: 5\n")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "linear", cfg.Learner)
	assert.Equal(t, 3, cfg.Repetitions)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)

	defaults, err := loadConfig(writeFile(t, "empty.yaml", "arff: a.arff\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Repetitions)

	_, err = loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	_, err = loadConfig(writeFile(t, "broken.yaml", "learner: [\n"))
	assert.Error(t, err)
}
