// script_test.go — whole-pipeline scenarios loaded from testdata.
package kronos

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type scenario struct {
	Name      string `yaml:"name"`
	Source    string `yaml:"source"`
	Output    string `yaml:"output"`
	ErrorKind string `yaml:"error_kind"`
}

type scenarioFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

func Test_Scripts_From_Testdata(t *testing.T) {
	raw, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)

	var file scenarioFile
	require.NoError(t, yaml.Unmarshal(raw, &file))
	require.NotEmpty(t, file.Scenarios)

	for _, sc := range file.Scenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Run(sc.Source, &buf)

			if sc.ErrorKind != "" {
				require.Error(t, err)
				rte, ok := err.(*RuntimeError)
				require.True(t, ok, "expected *RuntimeError, got %T: %v", err, err)
				require.Equal(t, sc.ErrorKind, rte.Kind)
				return
			}

			require.NoError(t, err)
			require.Equal(t, sc.Output, buf.String())
		})
	}
}
