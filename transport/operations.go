package transport

import "net/http"

// Operation names the API calls the transport can dispatch. The set is fixed;
// callers cannot extend it at runtime.
type Operation string

const (
	AgentsList        Operation = "AgentsList"
	AgentGet          Operation = "AgentGet"
	AgentPatch        Operation = "AgentPatch"
	AgentDelete       Operation = "AgentDelete"
	TestsList         Operation = "TestsList"
	TestGet           Operation = "TestGet"
	TestCreate        Operation = "TestCreate"
	TestDelete        Operation = "TestDelete"
	TestPatch         Operation = "TestPatch"
	TestStatusUpdate  Operation = "TestStatusUpdate"
	GetHealthForTests Operation = "GetHealthForTests"
	GetTraceForTest   Operation = "GetTraceForTest"
)

type endpoint string

const (
	endpointAgents endpoint = "agents"
	endpointTests  endpoint = "tests"
	endpointHealth endpoint = "health"
)

var endpointPaths = map[endpoint]string{
	endpointAgents: "/synthetics/v202101beta1/agents",
	endpointTests:  "/synthetics/v202101beta1/tests",
	endpointHealth: "/synthetics/v202101beta1/health/tests",
}

type method string

const (
	methodGet    method = http.MethodGet
	methodPost   method = http.MethodPost
	methodPatch  method = http.MethodPatch
	methodPut    method = http.MethodPut
	methodDelete method = http.MethodDelete
)

func (m method) known() bool {
	switch m {
	case methodGet, methodPost, methodPatch, methodPut, methodDelete:
		return true
	}
	return false
}

// WholeResponse is the resp marker selecting the entire response body
// instead of a single field.
const WholeResponse = "*"

// operation describes one API call: which endpoint group it belongs to, the
// HTTP method, an optional path-parameter template appended to the endpoint
// path, whether a request body is required (body is its logical name, used in
// error messages), and which response field carries the result.
type operation struct {
	endpoint endpoint
	method   method
	params   string
	body     string
	resp     string
}

var operations = map[Operation]operation{
	AgentsList:        {endpoint: endpointAgents, method: methodGet, resp: "agents"},
	AgentGet:          {endpoint: endpointAgents, method: methodGet, params: "{id}", resp: "agent"},
	AgentPatch:        {endpoint: endpointAgents, method: methodPatch, params: "{id}", body: "agent", resp: "agent"},
	AgentDelete:       {endpoint: endpointAgents, method: methodDelete, params: "{id}"},
	TestsList:         {endpoint: endpointTests, method: methodGet, resp: "tests"},
	TestGet:           {endpoint: endpointTests, method: methodGet, params: "{id}", resp: "test"},
	TestCreate:        {endpoint: endpointTests, method: methodPost, body: "test", resp: "test"},
	TestDelete:        {endpoint: endpointTests, method: methodDelete, params: "{id}"},
	TestPatch:         {endpoint: endpointTests, method: methodPatch, params: "{id}", body: "test", resp: "test"},
	TestStatusUpdate:  {endpoint: endpointTests, method: methodPut, params: "{id}/status", body: "test_status"},
	GetHealthForTests: {endpoint: endpointHealth, method: methodPost, body: "health_request", resp: "health"},
	GetTraceForTest:   {endpoint: endpointHealth, method: methodPost, params: "{id}/results/trace", body: "trace_request", resp: WholeResponse},
}
