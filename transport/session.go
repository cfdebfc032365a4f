package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alessio/shellescape"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/synth-tools/synthetics-go/credentials"
	"github.com/synth-tools/synthetics-go/logging"
)

const (
	headerAuthEmail = "X-CH-Auth-Email"
	headerAuthToken = "X-CH-Auth-API-Token"
)

// SessionOpts are the optional knobs of NewHTTPSession. The zero value uses
// http.DefaultClient, no proxy, and no debug logging.
type SessionOpts struct {
	Proxy  string
	Client *http.Client
	Logger logging.Logger
}

// HTTPSession is the default Session implementation: authenticated JSON
// requests over net/http.
type HTTPSession struct {
	client *http.Client
	creds  credentials.Credentials
	logger logging.Logger
}

// NewHTTPSession creates a session that authenticates every request with the
// given credentials.
func NewHTTPSession(creds credentials.Credentials, opts SessionOpts) (*HTTPSession, error) {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		c := *client
		c.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		client = &c
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &HTTPSession{client: client, creds: creds, logger: logger}, nil
}

func (s *HTTPSession) Do(httpMethod, requestURL string, body ldvalue.Value) (int, []byte, error) {
	var reader io.Reader
	var data []byte
	if !body.IsNull() {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("cannot encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(httpMethod, requestURL, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set(headerAuthEmail, s.creds.Email)
	req.Header.Set(headerAuthToken, s.creds.APIToken)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	s.logger.Printf("%s", curlCommand(httpMethod, requestURL, data))
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	response, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, response, nil
}

// curlCommand renders the request as a copy-pasteable command line for debug
// logs. Credentials are never included.
func curlCommand(httpMethod, requestURL string, body []byte) string {
	parts := []string{"curl", "-X", httpMethod, shellescape.Quote(requestURL)}
	if body != nil {
		parts = append(parts, "-d", shellescape.Quote(string(body)))
	}
	return strings.Join(parts, " ")
}
