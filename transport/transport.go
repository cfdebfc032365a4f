// Package transport dispatches the fixed set of synthetics API operations
// over an HTTP session. A declarative operation table maps each operation to
// its endpoint, method, path template, body requirement, and response field;
// one generic executor interprets any entry.
package transport

import (
	"fmt"
	"regexp"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/synth-tools/synthetics-go/logging"
)

// DefaultBaseURL is the production synthetics API endpoint.
const DefaultBaseURL = "https://synthetics.api.kentik.com"

// Session is the underlying HTTP transport: one synchronous request, no
// retries. A nil body means no request body. Session errors are network-level
// failures; HTTP error statuses are returned as a normal result.
type Session interface {
	Do(method, url string, body ldvalue.Value) (status int, response []byte, err error)
}

// ConfigError reports a misuse of the operation table: an unknown operation,
// an unknown method, or a missing path/body parameter.
type ConfigError struct {
	Op      Operation
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Op)
}

// RequestError reports a non-success HTTP status. The raw response body is
// retained for caller inspection.
type RequestError struct {
	Status   int
	Message  string
	Response []byte
}

func (e *RequestError) Error() string { return e.Message }

// Transport executes operations against one API base URL.
type Transport struct {
	baseURL string
	session Session
	logger  logging.Logger
}

// New creates a Transport. An empty baseURL selects DefaultBaseURL; a nil
// logger discards debug output.
func New(baseURL string, session Session, logger logging.Logger) *Transport {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &Transport{baseURL: baseURL, session: session, logger: logger}
}

// Args carries the caller-supplied inputs of one operation: values for the
// path-parameter template and the request body, if the operation takes one.
type Args struct {
	Params map[string]string
	Body   ldvalue.Value
}

var templateParam = regexp.MustCompile(`\{(\w+)\}`)

func expandTemplate(op Operation, template string, params map[string]string) (string, error) {
	var missing string
	path := templateParam.ReplaceAllStringFunc(template, func(tok string) string {
		name := tok[1 : len(tok)-1]
		v, ok := params[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return tok
		}
		return v
	})
	if missing != "" {
		return "", &ConfigError{Op: op, Message: fmt.Sprintf("missing required parameter %q", missing)}
	}
	return path, nil
}

// Req executes one operation and returns the extracted response value:
// the declared response field, the whole body for operations declaring
// WholeResponse, or Null for operations without response data. Any HTTP
// status other than 200 or 201 is a RequestError.
func (t *Transport) Req(op Operation, args Args) (ldvalue.Value, error) {
	svc, ok := operations[op]
	if !ok {
		return ldvalue.Null(), &ConfigError{Op: op, Message: "invalid operation"}
	}
	if !svc.method.known() {
		return ldvalue.Null(), &ConfigError{Op: op, Message: fmt.Sprintf("invalid method %q", svc.method)}
	}
	url := t.baseURL + endpointPaths[svc.endpoint]
	if svc.params != "" {
		path, err := expandTemplate(op, svc.params, args.Params)
		if err != nil {
			return ldvalue.Null(), err
		}
		url += "/" + path
	}
	body := ldvalue.Null()
	if svc.body != "" {
		if args.Body.IsNull() {
			return ldvalue.Null(), &ConfigError{Op: op, Message: fmt.Sprintf("%q body is required", svc.body)}
		}
		body = args.Body
	}
	t.logger.Printf("%s %s", svc.method, url)
	status, response, err := t.session.Do(string(svc.method), url, body)
	if err != nil {
		return ldvalue.Null(), err
	}
	if status != 200 && status != 201 {
		return ldvalue.Null(), &RequestError{
			Status:   status,
			Message:  fmt.Sprintf("%s failed - status: %d error: %s", svc.method, status, response),
			Response: response,
		}
	}
	switch svc.resp {
	case "":
		return ldvalue.Null(), nil
	case WholeResponse:
		return ldvalue.Parse(response), nil
	default:
		return ldvalue.Parse(response).GetByKey(svc.resp), nil
	}
}
