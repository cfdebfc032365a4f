package synthclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/synth-tools/synthetics-go/credentials"
	"github.com/synth-tools/synthetics-go/synthtest"
	"github.com/synth-tools/synthetics-go/transport"
)

var testCreds = credentials.Credentials{Email: "user@example.com", APIToken: "token123"}

type fakeSession struct {
	method string
	url    string
	body   ldvalue.Value

	status   int
	response []byte
}

func (s *fakeSession) Do(method, url string, body ldvalue.Value) (int, []byte, error) {
	s.method = method
	s.url = url
	s.body = body
	return s.status, s.response, nil
}

func newClient(t *testing.T, session transport.Session) *Client {
	t.Helper()
	c, err := New(testCreds, Opts{Session: session})
	require.NoError(t, err)
	return c
}

func TestNormalizeBaseURL(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"https://api.kentik.com", "https://synthetics.api.kentik.com"},
		{"https://api.kentik.eu", "https://synthetics.api.kentik.eu"},
		{"https://synthetics.api.kentik.com", "https://synthetics.api.kentik.com"},
		{"https://example.com", "https://example.com"},
	}
	for _, tc := range testCases {
		got, err := normalizeBaseURL(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got, "input: %s", tc.input)
	}
}

func TestClientUsesNormalizedURL(t *testing.T) {
	session := &fakeSession{status: 200, response: []byte(`{"agents": []}`)}
	c, err := New(testCreds, Opts{URL: "https://api.kentik.com", Session: session})
	require.NoError(t, err)

	_, err = c.Agents()
	require.NoError(t, err)
	assert.Equal(t, "https://synthetics.api.kentik.com/synthetics/v202101beta1/agents", session.url)
}

func TestAgentsListExtractsItems(t *testing.T) {
	session := &fakeSession{status: 200, response: []byte(`{"agents": [{"id": "1"}, {"id": "2"}]}`)}
	c := newClient(t, session)

	agents, err := c.Agents()
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "1", agents[0].GetByKey("id").StringValue())
}

func TestPatchAgentBody(t *testing.T) {
	session := &fakeSession{status: 200, response: []byte(`{"agent": {"id": "593"}}`)}
	c := newClient(t, session)

	agent := ldvalue.Parse([]byte(`{"id": "593", "alias": "probe-1"}`))
	_, err := c.PatchAgent("593", agent, "agent.alias")
	require.NoError(t, err)
	assert.Equal(t, "PATCH", session.method)
	assert.Contains(t, session.url, "/agents/593")
	assert.Equal(t, "agent.alias", session.body.GetByKey("mask").StringValue())
	assert.Equal(t, "probe-1", session.body.GetByKey("agent").GetByKey("alias").StringValue())
}

func TestCreateTestDecodesServerCopy(t *testing.T) {
	local := synthtest.NewHostnameTest("t1", "example.com", []string{"101"})
	wire := local.ToWire().JSONString()
	// the server's copy carries an assigned id
	session := &fakeSession{status: 201, response: []byte(`{"test": ` + patchJSONID(wire) + `}`)}
	c := newClient(t, session)

	created, err := c.CreateTest(local)
	require.NoError(t, err)
	assert.Equal(t, "POST", session.method)
	assert.True(t, created.Deployed())
	assert.Equal(t, "593", created.ID())
	assert.Equal(t, synthtest.TestTypeHostname, created.Type)

	// request body wraps the serialized test
	_, hasTest := session.body.TryGetByKey("test")
	assert.True(t, hasTest)
}

func patchJSONID(wire string) string {
	return `{"id": "593", ` + wire[1:]
}

func TestPatchTestRefusesUndeployed(t *testing.T) {
	c := newClient(t, &fakeSession{status: 200, response: []byte(`{}`)})
	local := synthtest.NewHostnameTest("t1", "example.com", []string{"101"})

	_, err := c.PatchTest(local, "test.name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not been created")
}

func TestSetTestStatusBody(t *testing.T) {
	session := &fakeSession{status: 200, response: nil}
	c := newClient(t, session)

	require.NoError(t, c.SetTestStatus("42", synthtest.TestStatusPaused))
	assert.Equal(t, "PUT", session.method)
	assert.Contains(t, session.url, "/tests/42/status")
	assert.Equal(t, "42", session.body.GetByKey("id").StringValue())
	assert.Equal(t, "TEST_STATUS_PAUSED", session.body.GetByKey("status").StringValue())
}

func TestHealthRequestBody(t *testing.T) {
	session := &fakeSession{status: 200, response: []byte(`{"health": [{"testId": "1"}]}`)}
	c := newClient(t, session)

	start := time.Date(2021, 4, 8, 10, 0, 0, 0, time.UTC)
	records, err := c.Health(HealthRequest{
		TestIDs: []string{"1"},
		Start:   start,
		End:     start.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	body := session.body
	assert.Equal(t, "2021-04-08T10:00:00Z", body.GetByKey("startTime").StringValue())
	assert.Equal(t, "2021-04-08T11:00:00Z", body.GetByKey("endTime").StringValue())
	assert.Equal(t, ldvalue.ArrayType, body.GetByKey("agentIds").Type(), "absent lists must be sent as empty arrays")
	assert.Equal(t, 0, body.GetByKey("agentIds").Count())
	assert.False(t, body.GetByKey("augment").BoolValue())
}

func TestTraceRequestIncludesTestID(t *testing.T) {
	session := &fakeSession{status: 200, response: []byte(`{"trace": []}`)}
	c := newClient(t, session)

	start := time.Date(2021, 4, 8, 10, 0, 0, 0, time.UTC)
	_, err := c.Trace("77", TraceRequest{Start: start, End: start.Add(time.Minute)})
	require.NoError(t, err)
	assert.Contains(t, session.url, "/tests/77/results/trace")
	assert.Equal(t, "77", session.body.GetByKey("id").StringValue())
}

func TestTestsListDecodesVariants(t *testing.T) {
	hostname := synthtest.NewHostnameTest("t1", "example.com", []string{"101"}).ToWire().JSONString()
	dns := synthtest.NewDNSTest("t2", "example.com", []string{"101"}, []string{"1.1.1.1"}).ToWire().JSONString()
	session := &fakeSession{status: 200, response: []byte(`{"tests": [` + hostname + `, ` + dns + `]}`)}
	c := newClient(t, session)

	tests, err := c.Tests()
	require.NoError(t, err)
	require.Len(t, tests, 2)
	assert.Equal(t, synthtest.TestTypeHostname, tests[0].Type)
	assert.Equal(t, synthtest.TestTypeDNS, tests[1].Type)
}
