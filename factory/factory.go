// Package factory builds synthetic tests from YAML documents. A document has
// one top-level "test" mapping naming the test type, its targets and agents,
// and optional probe parameters; it is validated against an embedded JSON
// schema before the corresponding synthtest factory runs.
package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/synth-tools/synthetics-go/synthtest"
)

type testDocument struct {
	Test testConfig `yaml:"test"`
}

type testConfig struct {
	Type            string            `yaml:"type"`
	Name            string            `yaml:"name"`
	Target          string            `yaml:"target"`
	Targets         []string          `yaml:"targets"`
	Agents          []string          `yaml:"agents"`
	Servers         []string          `yaml:"servers"`
	Method          string            `yaml:"method"`
	Headers         map[string]string `yaml:"headers"`
	Body            string            `yaml:"body"`
	IgnoreTLSErrors bool              `yaml:"ignoreTlsErrors"`
	Ping            bool              `yaml:"ping"`
	Trace           bool              `yaml:"trace"`
	Period          int               `yaml:"period"`
	Timeout         float64           `yaml:"timeout"`
}

// Load reads a YAML test document from a file. Documents without a name get
// a generated one derived from the file name, marking the test as
// tool-managed.
func Load(path string) (*synthtest.Test, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read test document: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	now := time.Now().UTC().Truncate(time.Minute).Format(time.RFC3339)
	return FromYAML(data, fmt.Sprintf("__auto__%s_%s", stem, now))
}

// FromYAML builds a test from a YAML document, using defaultName when the
// document does not name the test itself.
func FromYAML(data []byte, defaultName string) (*synthtest.Test, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse test document: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	var doc testDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse test document: %w", err)
	}
	cfg := doc.Test
	name := cfg.Name
	if name == "" {
		name = defaultName
	}
	t, err := build(name, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Period > 0 {
		if err := t.SetPeriod(cfg.Period); err != nil {
			return nil, err
		}
	}
	if cfg.Timeout > 0 {
		if err := t.SetTimeout(cfg.Timeout); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func build(name string, cfg testConfig) (*synthtest.Test, error) {
	httpOpts := synthtest.HTTPOpts{
		Method:          cfg.Method,
		Headers:         cfg.Headers,
		Body:            cfg.Body,
		IgnoreTLSErrors: cfg.IgnoreTLSErrors,
	}
	switch synthtest.TestType(cfg.Type) {
	case synthtest.TestTypeHostname:
		if err := requireTarget(cfg); err != nil {
			return nil, err
		}
		return synthtest.NewHostnameTest(name, cfg.Target, cfg.Agents), nil
	case synthtest.TestTypeIP:
		if err := requireTargets(cfg); err != nil {
			return nil, err
		}
		return synthtest.NewIPTest(name, cfg.Targets, cfg.Agents), nil
	case synthtest.TestTypeMesh:
		return synthtest.NewMeshTest(name, cfg.Agents), nil
	case synthtest.TestTypeNetworkGrid:
		if err := requireTargets(cfg); err != nil {
			return nil, err
		}
		return synthtest.NewNetworkGridTest(name, cfg.Targets, cfg.Agents), nil
	case synthtest.TestTypeDNS:
		if err := requireTarget(cfg); err != nil {
			return nil, err
		}
		if err := requireServers(cfg); err != nil {
			return nil, err
		}
		return synthtest.NewDNSTest(name, cfg.Target, cfg.Agents, cfg.Servers), nil
	case synthtest.TestTypeDNSGrid:
		if err := requireTargets(cfg); err != nil {
			return nil, err
		}
		if err := requireServers(cfg); err != nil {
			return nil, err
		}
		return synthtest.NewDNSGridTest(name, cfg.Targets, cfg.Agents, cfg.Servers), nil
	case synthtest.TestTypeURL:
		if err := requireTarget(cfg); err != nil {
			return nil, err
		}
		return synthtest.NewURLTest(name, cfg.Target, cfg.Agents, httpOpts, cfg.Ping, cfg.Trace), nil
	case synthtest.TestTypePageLoad:
		if err := requireTarget(cfg); err != nil {
			return nil, err
		}
		return synthtest.NewPageLoadTest(name, cfg.Target, cfg.Agents, httpOpts), nil
	case synthtest.TestTypeAgent:
		if err := requireTarget(cfg); err != nil {
			return nil, err
		}
		return synthtest.NewAgentTest(name, cfg.Target, cfg.Agents), nil
	default:
		return nil, fmt.Errorf("unsupported test type %q (supported: %s)",
			cfg.Type, strings.Join(synthtest.SupportedTestTypes(), ", "))
	}
}

func requireTarget(cfg testConfig) error {
	if cfg.Target == "" {
		return fmt.Errorf("%s test requires a 'target'", cfg.Type)
	}
	return nil
}

func requireTargets(cfg testConfig) error {
	if len(cfg.Targets) == 0 {
		return fmt.Errorf("%s test requires a 'targets' list", cfg.Type)
	}
	return nil
}

func requireServers(cfg testConfig) error {
	if len(cfg.Servers) == 0 {
		return fmt.Errorf("%s test requires a 'servers' list", cfg.Type)
	}
	return nil
}
