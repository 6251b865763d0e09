package config_test

import (
	"go.arcalot.io/log/v2"
	"testing"

	"go.arcalot.io/assert"
	"go.arcalot.io/lang"
	"go.flow.arcalot.io/subfactory/config"
	"go.flow.arcalot.io/subfactory/export"
	"go.flow.arcalot.io/subfactory/loader"
	"gopkg.in/yaml.v3"
)

func defaultConfig() config.Config {
	return config.Config{
		Log: log.Config{
			Level:       log.LevelInfo,
			Destination: log.DestinationStdout,
		},
		Graph: config.GraphConfig{
			ItemNames:        loader.ItemNamesID,
			WarnUnknownSeeds: true,
			RejectCycles:     false,
		},
		Output: config.OutputConfig{
			Format:       export.FormatYAML,
			IncludeSteps: false,
		},
	}
}

var configLoadData = map[string]struct {
	input          string
	error          bool
	expectedOutput func() config.Config
}{
	"empty": {
		input:          "",
		expectedOutput: defaultConfig,
	},
	"log-level": {
		input: `
log:
  level: debug
`,
		expectedOutput: func() config.Config {
			c := defaultConfig()
			c.Log.Level = log.LevelDebug
			return c
		},
	},
	"graph": {
		input: `
graph:
  item_names: label
  warn_unknown_seeds: false
  reject_cycles: true
`,
		expectedOutput: func() config.Config {
			c := defaultConfig()
			c.Graph = config.GraphConfig{
				ItemNames:        loader.ItemNamesLabel,
				WarnUnknownSeeds: false,
				RejectCycles:     true,
			}
			return c
		},
	},
	"output": {
		input: `
output:
  format: table
  include_steps: true
`,
		expectedOutput: func() config.Config {
			c := defaultConfig()
			c.Output = config.OutputConfig{Format: export.FormatTable, IncludeSteps: true}
			return c
		},
	},
	"invalid-format": {
		input: `
output:
  format: svg
`,
		error: true,
	},
	"invalid-item-names": {
		input: `
graph:
  item_names: color
`,
		error: true,
	},
	"unknown-log-level": {
		input: `
log:
  level: verbose
`,
		error: true,
	},
}

func TestConfigLoad(t *testing.T) {
	for name, tc := range configLoadData {
		testCase := tc
		t.Run(name, func(t *testing.T) {
			c, err := config.LoadYAML([]byte(testCase.input))
			if err != nil && !testCase.error {
				t.Fatalf("Unexpected error: %v", err)
			}
			if err == nil && testCase.error {
				t.Fatal("No error returned")
			}
			if testCase.error {
				return
			}

			marshalledC := string(lang.Must2(yaml.Marshal(*c)))
			marshalledExpectedOutput := string(lang.Must2(yaml.Marshal(testCase.expectedOutput())))

			if marshalledC != marshalledExpectedOutput {
				t.Fatalf(
					"The loaded config does not match the expected value:\n\nGot:\n\n%s\n\nExpected:\n\n%s\n\n",
					marshalledC,
					marshalledExpectedOutput,
				)
			}
		})
	}
}

func TestConfigLoadInvalidYAML(t *testing.T) {
	_, err := config.LoadYAML([]byte("log: [debug"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse configuration YAML")
}

func TestDefault(t *testing.T) {
	c := config.Default()
	assert.Equals(t, c.Graph, defaultConfig().Graph)
	assert.Equals(t, c.Output, defaultConfig().Output)
	assert.Equals(t, c.Graph.LoaderOptions(), loader.Options{ItemNames: loader.ItemNamesID})
	assert.Equals(t, c.Output.ExportOptions(), export.Options{})
}
