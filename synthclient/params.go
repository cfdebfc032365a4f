package synthclient

import (
	"encoding/json"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// HealthRequest selects the tests and time range of a Health call.
type HealthRequest struct {
	TestIDs  []string
	Start    time.Time
	End      time.Time
	Augment  bool
	AgentIDs []string
	TaskIDs  []string
}

type healthRequestBody struct {
	IDs       []string `json:"ids"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Augment   bool     `json:"augment"`
	AgentIDs  []string `json:"agentIds"`
	TaskIDs   []string `json:"taskIds"`
}

func (r HealthRequest) toWire() (ldvalue.Value, error) {
	return marshalBody(healthRequestBody{
		IDs:       emptyIfNil(r.TestIDs),
		StartTime: r.Start.Format(time.RFC3339),
		EndTime:   r.End.Format(time.RFC3339),
		Augment:   r.Augment,
		AgentIDs:  emptyIfNil(r.AgentIDs),
		TaskIDs:   emptyIfNil(r.TaskIDs),
	})
}

// TraceRequest selects the time range and scope of a Trace call. The test id
// comes from the Trace call itself.
type TraceRequest struct {
	Start     time.Time
	End       time.Time
	AgentIDs  []string
	TargetIPs []string
}

type traceRequestBody struct {
	ID        string   `json:"id"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	AgentIDs  []string `json:"agentIds"`
	TargetIPs []string `json:"targetIps"`
}

func (r TraceRequest) toWire(testID string) (ldvalue.Value, error) {
	return marshalBody(traceRequestBody{
		ID:        testID,
		StartTime: r.Start.Format(time.RFC3339),
		EndTime:   r.End.Format(time.RFC3339),
		AgentIDs:  emptyIfNil(r.AgentIDs),
		TargetIPs: emptyIfNil(r.TargetIPs),
	})
}

func marshalBody(v interface{}) (ldvalue.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ldvalue.Null(), err
	}
	return ldvalue.Parse(data), nil
}

// emptyIfNil keeps absent lists as JSON arrays rather than null, which is
// what the API expects.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
