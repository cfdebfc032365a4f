package synthtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestSerializeSkipsServerAssignedFields(t *testing.T) {
	test := NewHostnameTest("t1", "example.com", []string{"101"})
	test.id = "900"
	test.cdate = "2021-04-08T12:00:00Z"

	wire := Serialize(test)
	_, hasID := wire.TryGetByKey("id")
	_, hasCdate := wire.TryGetByKey("cdate")
	_, hasEdate := wire.TryGetByKey("edate")
	assert.False(t, hasID)
	assert.False(t, hasCdate)
	assert.False(t, hasEdate)
	assert.Equal(t, "t1", wire.GetByKey("name").StringValue())
	assert.Equal(t, "hostname", wire.GetByKey("type").StringValue())
}

func TestDeserializeAppliesServerAssignedFields(t *testing.T) {
	source := NewHostnameTest("t1", "example.com", []string{"101"})
	wire := ldvalue.Parse([]byte(`{
		"name": "t1", "type": "hostname", "status": "TEST_STATUS_ACTIVE",
		"deviceId": "0", "id": "593",
		"cdate": "2021-04-08T12:00:00Z", "edate": "2021-04-09T08:30:00Z",
		"settings": ` + Serialize(source.Settings).JSONString() + `}`))

	decoded, err := TestFromWire(wire)
	require.NoError(t, err)
	assert.Equal(t, "593", decoded.ID())
	assert.True(t, decoded.Deployed())
	cdate, ok := decoded.CreationDate()
	require.True(t, ok)
	assert.Equal(t, 2021, cdate.Year())
}

func TestDeserializeMissingRequiredField(t *testing.T) {
	wire := ldvalue.Parse([]byte(`{"type": "hostname"}`))
	_, err := TestFromWire(wire)
	require.Error(t, err)
	var de *DeserializationError
	require.ErrorAs(t, err, &de)
	assert.True(t, de.Missing)
	assert.Equal(t, "name", de.Key)
}

func TestDeserializeReportsUncoercibleValue(t *testing.T) {
	wire := ldvalue.Parse([]byte(`{"name": "t1", "type": "hostname", "settings": {"port": "not-a-number"}}`))
	_, err := TestFromWire(wire)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
	assert.Contains(t, err.Error(), "not-a-number")
}

func TestDeserializeRejectsUnknownEnumValue(t *testing.T) {
	wire := ldvalue.Parse([]byte(`{"name": "t1", "type": "hostname", "status": "TEST_STATUS_BOGUS"}`))
	_, err := TestFromWire(wire)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestDeserializeLeavesDefaultsForAbsentFields(t *testing.T) {
	wire := ldvalue.Parse([]byte(`{"name": "t1", "type": "hostname"}`))
	decoded, err := TestFromWire(wire)
	require.NoError(t, err)
	assert.Equal(t, TestStatusActive, decoded.Status)
	assert.Equal(t, DefaultPeriod, decoded.Settings.base().Period)
	assert.Equal(t, DefaultExpiry, decoded.Settings.base().Expiry)
	assert.Equal(t, UndeployedID, decoded.ID())
	_, ok := decoded.CreationDate()
	assert.False(t, ok)
}

func roundTrip(t *testing.T, test *Test) {
	t.Helper()
	decoded, err := TestFromWire(test.ToWire())
	require.NoError(t, err)
	assert.Empty(t, CompareTests(test, decoded))
	assert.Equal(t, test.ID(), decoded.ID())
}

func TestRoundTripAllVariants(t *testing.T) {
	agents := []string{"101", "102"}
	servers := []string{"1.1.1.1", "8.8.8.8"}
	tests := map[string]*Test{
		"hostname":  NewHostnameTest("t-hostname", "example.com", agents),
		"ip":        NewIPTest("t-ip", []string{"10.0.0.1", "10.0.0.2"}, agents),
		"mesh":      NewMeshTest("t-mesh", agents),
		"grid":      NewNetworkGridTest("t-grid", []string{"10.0.0.1"}, agents),
		"dns":       NewDNSTest("t-dns", "example.com", agents, servers),
		"dns-grid":  NewDNSGridTest("t-dns-grid", []string{"example.com"}, agents, servers),
		"url":       NewURLTest("t-url", "https://example.com", agents, HTTPOpts{Method: "POST", Body: "{}"}, true, false),
		"page-load": NewPageLoadTest("t-page", "https://example.com", agents, HTTPOpts{IgnoreTLSErrors: true}),
		"agent":     NewAgentTest("t-agent", "201", agents),
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, test)
		})
	}
}

func TestRoundTripPreservesNestedTaskFields(t *testing.T) {
	test := NewURLTest("t-url", "https://example.com", []string{"101"},
		HTTPOpts{Method: "PUT", Headers: map[string]string{"x-test": "1"}}, false, true)
	require.NoError(t, test.SetTimeout(7.5, TaskHTTP))

	decoded, err := TestFromWire(test.ToWire())
	require.NoError(t, err)
	s, ok := decoded.Settings.(*URLSettings)
	require.True(t, ok)
	assert.Equal(t, "PUT", s.HTTP.Method)
	assert.Equal(t, map[string]string{"x-test": "1"}, s.HTTP.Headers)
	assert.Equal(t, 7500, s.HTTP.Expiry)
}
