package factory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synth-tools/synthetics-go/synthtest"
)

func TestFromYAMLHostname(t *testing.T) {
	doc := `
test:
  type: hostname
  name: web-check
  target: example.com
  agents: ["101", "102"]
`
	test, err := FromYAML([]byte(doc), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "web-check", test.Name)
	assert.Equal(t, synthtest.TestTypeHostname, test.Type)
	s := test.Settings.(*synthtest.HostnameSettings)
	assert.Equal(t, "example.com", s.Hostname.Target)
	assert.Equal(t, []string{"101", "102"}, s.AgentIDs)
}

func TestFromYAMLDefaultName(t *testing.T) {
	doc := `
test:
  type: application_mesh
  agents: ["101"]
`
	test, err := FromYAML([]byte(doc), "__auto__mesh_2021-04-08T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "__auto__mesh_2021-04-08T10:00:00Z", test.Name)
}

func TestFromYAMLAppliesPeriodAndTimeout(t *testing.T) {
	doc := `
test:
  type: dns
  name: dns-check
  target: example.com
  agents: ["101"]
  servers: ["1.1.1.1"]
  period: 120
  timeout: 2.5
`
	test, err := FromYAML([]byte(doc), "fallback")
	require.NoError(t, err)
	s := test.Settings.(*synthtest.DNSSettings)
	assert.Equal(t, 120, s.Period)
	assert.Equal(t, 2500, s.Expiry)
}

func TestFromYAMLURLOptions(t *testing.T) {
	doc := `
test:
  type: url
  name: api-check
  target: https://example.com/api
  agents: ["101"]
  method: POST
  headers:
    Accept: application/json
  body: '{"q": 1}'
  ignoreTlsErrors: true
  ping: true
`
	test, err := FromYAML([]byte(doc), "fallback")
	require.NoError(t, err)
	s := test.Settings.(*synthtest.URLSettings)
	assert.Equal(t, "POST", s.HTTP.Method)
	assert.Equal(t, map[string]string{"Accept": "application/json"}, s.HTTP.Headers)
	assert.True(t, s.HTTP.IgnoreTLSErrors)
	assert.Equal(t, []string{synthtest.TaskHTTP, synthtest.TaskPing}, s.Tasks)
}

func TestFromYAMLRejectsUnknownKeys(t *testing.T) {
	doc := `
test:
  type: hostname
  target: example.com
  agents: ["101"]
  bogus: true
`
	_, err := FromYAML([]byte(doc), "fallback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestFromYAMLRejectsMissingAgents(t *testing.T) {
	doc := `
test:
  type: hostname
  target: example.com
`
	_, err := FromYAML([]byte(doc), "fallback")
	require.Error(t, err)
}

func TestFromYAMLRejectsUnbuildableType(t *testing.T) {
	doc := `
test:
  type: flow
  agents: ["101"]
`
	_, err := FromYAML([]byte(doc), "fallback")
	require.Error(t, err)
}

func TestFromYAMLMissingTargetForType(t *testing.T) {
	doc := `
test:
  type: hostname
  agents: ["101"]
`
	_, err := FromYAML([]byte(doc), "fallback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target")
}

func TestFromYAMLDNSRequiresServers(t *testing.T) {
	doc := `
test:
  type: dns
  target: example.com
  agents: ["101"]
`
	_, err := FromYAML([]byte(doc), "fallback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "servers")
}

func TestLoadGeneratesAutoName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh-eu.yaml")
	doc := `
test:
  type: application_mesh
  agents: ["101"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	test, err := Load(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(test.Name, "__auto__mesh-eu_"), "name: %s", test.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
