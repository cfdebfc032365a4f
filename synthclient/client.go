// Package synthclient is the high-level client for the synthetics API:
// typed operations over the generic transport, returning decoded model
// objects where the wire format is modeled.
package synthclient

import (
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/synth-tools/synthetics-go/credentials"
	"github.com/synth-tools/synthetics-go/logging"
	"github.com/synth-tools/synthetics-go/synthtest"
	"github.com/synth-tools/synthetics-go/transport"
)

// Opts are the optional knobs of New. The zero value talks to the production
// API over a fresh authenticated HTTP session.
type Opts struct {
	// URL overrides the API base URL. A host with a leading "api." label is
	// rewritten to its synthetics endpoint ("api.x.com" -> "synthetics.api.x.com").
	URL string

	// Proxy is passed to the default HTTP session.
	Proxy string

	// Session replaces the default HTTP session entirely.
	Session transport.Session

	Logger logging.Logger
}

// Client issues synthetics API calls.
type Client struct {
	transport *transport.Transport
	logger    logging.Logger
}

// New creates a Client.
func New(creds credentials.Credentials, opts Opts) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NullLogger()
	}
	baseURL := transport.DefaultBaseURL
	if opts.URL != "" {
		normalized, err := normalizeBaseURL(opts.URL)
		if err != nil {
			return nil, err
		}
		if normalized != opts.URL {
			logger.Printf("Setting url to: %s (input: %s)", normalized, opts.URL)
		}
		baseURL = normalized
	}
	session := opts.Session
	if session == nil {
		var err error
		session, err = transport.NewHTTPSession(creds, transport.SessionOpts{Proxy: opts.Proxy, Logger: logger})
		if err != nil {
			return nil, err
		}
	}
	return &Client{transport: transport.New(baseURL, session, logger), logger: logger}, nil
}

// normalizeBaseURL maps a generic API URL to its synthetics endpoint by
// prefixing the host with "synthetics" when the host starts with "api".
func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	labels := strings.Split(u.Host, ".")
	if labels[0] == "api" {
		u.Host = "synthetics." + u.Host
	}
	return u.String(), nil
}

// Agents lists all agents visible to the caller's organization.
func (c *Client) Agents() ([]ldvalue.Value, error) {
	v, err := c.transport.Req(transport.AgentsList, transport.Args{})
	if err != nil {
		return nil, err
	}
	return arrayItems(v), nil
}

// Agent fetches one agent by id.
func (c *Client) Agent(id string) (ldvalue.Value, error) {
	return c.transport.Req(transport.AgentGet, transport.Args{Params: map[string]string{"id": id}})
}

// PatchAgent updates the fields of an agent named by the mask.
func (c *Client) PatchAgent(id string, agent ldvalue.Value, mask string) (ldvalue.Value, error) {
	body := ldvalue.ObjectBuild().
		Set("agent", agent).
		Set("mask", ldvalue.String(mask)).
		Build()
	return c.transport.Req(transport.AgentPatch, transport.Args{
		Params: map[string]string{"id": id},
		Body:   body,
	})
}

// DeleteAgent removes an agent.
func (c *Client) DeleteAgent(id string) error {
	_, err := c.transport.Req(transport.AgentDelete, transport.Args{Params: map[string]string{"id": id}})
	return err
}

// Tests lists all tests, decoded into their concrete variants.
func (c *Client) Tests() ([]*synthtest.Test, error) {
	v, err := c.transport.Req(transport.TestsList, transport.Args{})
	if err != nil {
		return nil, err
	}
	items := arrayItems(v)
	tests := make([]*synthtest.Test, 0, len(items))
	for _, item := range items {
		t, err := synthtest.TestFromWire(item)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, nil
}

// Test fetches one test by id.
func (c *Client) Test(id string) (*synthtest.Test, error) {
	v, err := c.transport.Req(transport.TestGet, transport.Args{Params: map[string]string{"id": id}})
	if err != nil {
		return nil, err
	}
	return synthtest.TestFromWire(v)
}

// CreateTest persists a locally built test and returns the server's copy,
// including the assigned id and timestamps.
func (c *Client) CreateTest(t *synthtest.Test) (*synthtest.Test, error) {
	body := ldvalue.ObjectBuild().Set("test", t.ToWire()).Build()
	v, err := c.transport.Req(transport.TestCreate, transport.Args{Body: body})
	if err != nil {
		return nil, err
	}
	return synthtest.TestFromWire(v)
}

// PatchTest updates the fields of a deployed test named by the mask and
// returns the server's copy.
func (c *Client) PatchTest(t *synthtest.Test, mask string) (*synthtest.Test, error) {
	if !t.Deployed() {
		return nil, fmt.Errorf("test %q has not been created yet (id=%s), cannot patch", t.Name, t.ID())
	}
	body := ldvalue.ObjectBuild().
		Set("test", t.ToWire()).
		Set("mask", ldvalue.String(mask)).
		Build()
	v, err := c.transport.Req(transport.TestPatch, transport.Args{
		Params: map[string]string{"id": t.ID()},
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return synthtest.TestFromWire(v)
}

// DeleteTest removes a test from the server. The local object is unchanged.
func (c *Client) DeleteTest(id string) error {
	_, err := c.transport.Req(transport.TestDelete, transport.Args{Params: map[string]string{"id": id}})
	return err
}

// SetTestStatus activates, pauses, or deletes a test.
func (c *Client) SetTestStatus(id string, status synthtest.TestStatus) error {
	body := ldvalue.ObjectBuild().
		Set("id", ldvalue.String(id)).
		Set("status", ldvalue.String(string(status))).
		Build()
	_, err := c.transport.Req(transport.TestStatusUpdate, transport.Args{
		Params: map[string]string{"id": id},
		Body:   body,
	})
	return err
}

// Health returns health records for the requested tests and time range.
func (c *Client) Health(req HealthRequest) ([]ldvalue.Value, error) {
	body, err := req.toWire()
	if err != nil {
		return nil, err
	}
	v, err := c.transport.Req(transport.GetHealthForTests, transport.Args{Body: body})
	if err != nil {
		return nil, err
	}
	return arrayItems(v), nil
}

// Trace returns path trace results for one test.
func (c *Client) Trace(testID string, req TraceRequest) (ldvalue.Value, error) {
	body, err := req.toWire(testID)
	if err != nil {
		return ldvalue.Null(), err
	}
	return c.transport.Req(transport.GetTraceForTest, transport.Args{
		Params: map[string]string{"id": testID},
		Body:   body,
	})
}

func arrayItems(v ldvalue.Value) []ldvalue.Value {
	items := make([]ldvalue.Value, 0, v.Count())
	for i := 0; i < v.Count(); i++ {
		items = append(items, v.GetByIndex(i))
	}
	return items
}
