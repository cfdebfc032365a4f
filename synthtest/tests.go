package synthtest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/synth-tools/synthetics-go/logging"
)

// UndeployedID is the identity of a test that has not been created on the
// server yet. The server assigns a real id in the create response.
const UndeployedID = "0"

var logger logging.Logger = logging.NullLogger()

// SetLogger replaces the package logger used for degraded-support warnings
// emitted while decoding server data. The default discards output.
func SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.NullLogger()
	}
	logger = l
}

// Test is a configured synthetic test of one specific type. Instances are
// built with the New*Test factories or decoded from server data with
// TestFromWire; the Type field is the variant discriminant and is fixed per
// factory.
type Test struct {
	Name     string
	Type     TestType
	Status   TestStatus
	DeviceID string
	Settings TestSettings

	// Server-assigned, populated only from create/get responses.
	id    string
	cdate string
	edate string
}

func newTest(typ TestType, settings TestSettings) *Test {
	return &Test{
		Type:     typ,
		Status:   TestStatusActive,
		DeviceID: UndeployedID,
		Settings: settings,
		id:       UndeployedID,
	}
}

func (t *Test) Fields() []Field {
	return []Field{
		{Key: "name", Value: String(&t.Name), Required: true},
		{Key: "type", Value: Enum((*string)(&t.Type), testTypeValues...)},
		{Key: "status", Value: Enum((*string)(&t.Status), testStatusValues...)},
		{Key: "deviceId", Value: String(&t.DeviceID)},
		{Key: "settings", Value: Element(t.Settings)},
		{Key: "id", Value: String(&t.id), ServerSet: true},
		{Key: "cdate", Value: String(&t.cdate), ServerSet: true},
		{Key: "edate", Value: String(&t.edate), ServerSet: true},
	}
}

// ID returns the server-assigned test id, or UndeployedID.
func (t *Test) ID() string { return t.id }

// Deployed reports whether the test has been persisted server-side.
func (t *Test) Deployed() bool { return t.id != UndeployedID }

// CreationDate returns the server-side creation timestamp. The second return
// is false when the timestamp is absent or unparsable.
func (t *Test) CreationDate() (time.Time, bool) { return parseDate(t.cdate) }

// EditDate returns the server-side last-edit timestamp. The second return is
// false when the timestamp is absent or unparsable.
func (t *Test) EditDate() (time.Time, bool) { return parseDate(t.edate) }

func parseDate(s string) (time.Time, bool) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ToWire returns the test's wire object (the value of the "test" key in
// request bodies). Server-assigned fields are not included.
func (t *Test) ToWire() ldvalue.Value { return Serialize(t) }

// UsageError reports task names that do not exist on a test's settings.
type UsageError struct {
	Test  string
	Tasks []string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("tasks '%s' not present in test '%s'", strings.Join(e.Tasks, " "), e.Test)
}

// resolveTasks maps the requested task names to their configuration records,
// failing with a UsageError listing every unknown name before anything is
// mutated.
func (t *Test) resolveTasks(names []string) ([]task, error) {
	refs := t.Settings.taskRefs()
	var missing []string
	resolved := make([]task, 0, len(names))
	for _, name := range names {
		ref, ok := refs[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		resolved = append(resolved, ref)
	}
	if len(missing) > 0 {
		return nil, &UsageError{Test: t.Name, Tasks: missing}
	}
	return resolved, nil
}

// enabledTasks returns the configuration records of the tasks named in
// Settings.Tasks that carry their own settings, in declaration order.
func (t *Test) enabledTasks() []task {
	refs := t.Settings.taskRefs()
	var out []task
	for _, name := range t.Settings.base().Tasks {
		if ref, ok := refs[name]; ok {
			out = append(out, ref)
		}
	}
	return out
}

// SetPeriod sets the probe period in seconds. Without task names, ping/trace
// family tests apply it to every enabled task that has its own period, other
// variants to the test-level setting. With task names, only the named tasks
// are changed; unknown names fail with a UsageError and mutate nothing.
func (t *Test) SetPeriod(seconds int, tasks ...string) error {
	if len(tasks) == 0 {
		if !t.Settings.cascading() {
			t.Settings.base().Period = seconds
			return nil
		}
		for _, ref := range t.enabledTasks() {
			ref.setPeriod(seconds)
		}
		return nil
	}
	resolved, err := t.resolveTasks(tasks)
	if err != nil {
		return err
	}
	for _, ref := range resolved {
		ref.setPeriod(seconds)
	}
	return nil
}

// SetTimeout sets the probe expiry. Input is seconds (fractional allowed);
// the wire value is milliseconds, truncated toward zero. Task-name handling
// matches SetPeriod.
func (t *Test) SetTimeout(seconds float64, tasks ...string) error {
	millis := int(seconds * 1000)
	if len(tasks) == 0 {
		if !t.Settings.cascading() {
			t.Settings.base().Expiry = millis
			return nil
		}
		for _, ref := range t.enabledTasks() {
			ref.setExpiry(millis)
		}
		return nil
	}
	resolved, err := t.resolveTasks(tasks)
	if err != nil {
		return err
	}
	for _, ref := range resolved {
		ref.setExpiry(millis)
	}
	return nil
}

// MaxPeriod returns the longest period configured anywhere on the test: the
// test-level period and the period of every enabled task that has one.
// Variants without task records (dns, dns_grid) reduce to the test-level
// period.
func (t *Test) MaxPeriod() int {
	max := t.Settings.base().Period
	for _, ref := range t.enabledTasks() {
		if p := ref.period(); p > max {
			max = p
		}
	}
	return max
}

// ErrMissingTestType is returned by TestFromWire when the input has no "type"
// key at all, as opposed to an unrecognized value.
var ErrMissingTestType = fmt.Errorf("required attribute \"type\" missing in test data")

// UnsupportedTestTypeError reports a "type" value that does not map to any
// modeled test variant.
type UnsupportedTestTypeError struct {
	Type string
}

func (e *UnsupportedTestTypeError) Error() string {
	return fmt.Sprintf("unsupported test type: %q", e.Type)
}

// newTestOfType builds an empty test of the given variant with default
// settings. The bool return reports degraded support: a type the server
// knows but this model covers only with base attributes.
func newTestOfType(typ TestType) (*Test, bool, error) {
	switch typ {
	case TestTypeHostname:
		return newTest(typ, newHostnameSettings()), false, nil
	case TestTypeIP:
		return newTest(typ, newIPSettings()), false, nil
	case TestTypeMesh:
		s := newPingTraceSettings()
		return newTest(typ, &s), false, nil
	case TestTypeNetworkGrid:
		return newTest(typ, newGridSettings()), false, nil
	case TestTypeDNS:
		return newTest(typ, newDNSSettings()), false, nil
	case TestTypeDNSGrid:
		return newTest(typ, newDNSGridSettings()), false, nil
	case TestTypePageLoad:
		return newTest(typ, newPageLoadSettings()), false, nil
	case TestTypeAgent:
		return newTest(typ, newAgentSettings()), false, nil
	case TestTypeURL:
		return newTest(typ, newURLSettings()), false, nil
	case TestTypeNone, TestTypeBGPMonitor:
		s := newSynTestSettings()
		return newTest(typ, &s), true, nil
	default:
		return nil, false, &UnsupportedTestTypeError{Type: string(typ)}
	}
}

// TestFromWire decodes a test wire object into the concrete variant selected
// by its "type" value. Types known to the server but not fully modeled here
// decode into a base Test with a logged warning instead of failing.
func TestFromWire(data ldvalue.Value) (*Test, error) {
	typeVal, ok := data.TryGetByKey("type")
	if !ok {
		return nil, ErrMissingTestType
	}
	t, degraded, err := newTestOfType(TestType(typeVal.StringValue()))
	if err != nil {
		return nil, err
	}
	if degraded {
		logger.Printf("'%s' tests are not fully supported in the API. Test will have incomplete attributes",
			typeVal.StringValue())
	}
	if err := Deserialize(t, data); err != nil {
		return nil, err
	}
	return t, nil
}

// SupportedTestTypes lists the type tags TestFromWire accepts, sorted.
func SupportedTestTypes() []string {
	out := []string{
		string(TestTypeAgent),
		string(TestTypeBGPMonitor),
		string(TestTypeDNS),
		string(TestTypeDNSGrid),
		string(TestTypeHostname),
		string(TestTypeIP),
		string(TestTypeMesh),
		string(TestTypeNetworkGrid),
		string(TestTypePageLoad),
		string(TestTypeURL),
	}
	sort.Strings(out)
	return out
}

// NewHostnameTest builds a ping/trace test against a DNS name.
func NewHostnameTest(name, target string, agentIDs []string) *Test {
	s := newHostnameSettings()
	s.AgentIDs = agentIDs
	s.Hostname.Target = target
	t := newTest(TestTypeHostname, s)
	t.Name = name
	return t
}

// NewIPTest builds a ping/trace test against a list of addresses.
func NewIPTest(name string, targets []string, agentIDs []string) *Test {
	s := newIPSettings()
	s.AgentIDs = agentIDs
	s.IP.Targets = targets
	t := newTest(TestTypeIP, s)
	t.Name = name
	return t
}

// NewMeshTest builds a full-mesh ping/trace test between the given agents.
func NewMeshTest(name string, agentIDs []string) *Test {
	s := newPingTraceSettings()
	s.AgentIDs = agentIDs
	t := newTest(TestTypeMesh, &s)
	t.Name = name
	return t
}

// NewNetworkGridTest builds a many-to-many ping/trace test from every agent
// to every target address.
func NewNetworkGridTest(name string, targets []string, agentIDs []string) *Test {
	s := newGridSettings()
	s.AgentIDs = agentIDs
	s.NetworkGrid.Targets = targets
	t := newTest(TestTypeNetworkGrid, s)
	t.Name = name
	return t
}

// NewDNSTest builds a DNS resolution test for one name against the given
// servers.
func NewDNSTest(name, target string, agentIDs []string, servers []string) *Test {
	s := newDNSSettings()
	s.AgentIDs = agentIDs
	s.DNS.Target = target
	s.Servers = servers
	s.Tasks = []string{TaskDNS}
	s.Port = 53
	t := newTest(TestTypeDNS, s)
	t.Name = name
	return t
}

// NewDNSGridTest builds a DNS resolution test for every name/server
// combination.
func NewDNSGridTest(name string, targets []string, agentIDs []string, servers []string) *Test {
	s := newDNSGridSettings()
	s.AgentIDs = agentIDs
	s.DNSGrid.Targets = targets
	s.Servers = servers
	s.Tasks = []string{TaskDNS}
	s.Port = 53
	t := newTest(TestTypeDNSGrid, s)
	t.Name = name
	return t
}

// HTTPOpts carries the optional HTTP fetch parameters of url and page_load
// tests. The zero value means a plain GET.
type HTTPOpts struct {
	Method          string
	Headers         map[string]string
	Body            string
	IgnoreTLSErrors bool
}

func (o HTTPOpts) apply(t *HTTPTask) {
	if o.Method != "" {
		t.Method = o.Method
	}
	if o.Headers != nil {
		t.Headers = o.Headers
	}
	t.Body = o.Body
	t.IgnoreTLSErrors = o.IgnoreTLSErrors
}

// NewURLTest builds an HTTP fetch test. Ping and trace sub-tasks are enabled
// only when requested.
func NewURLTest(name, target string, agentIDs []string, opts HTTPOpts, withPing, withTrace bool) *Test {
	s := newURLSettings()
	s.AgentIDs = agentIDs
	s.URL.Target = target
	tasks := []string{TaskHTTP}
	if withPing {
		tasks = append(tasks, TaskPing)
	}
	if withTrace {
		tasks = append(tasks, TaskTraceroute)
	}
	s.Tasks = tasks
	opts.apply(&s.HTTP)
	t := newTest(TestTypeURL, s)
	t.Name = name
	return t
}

// NewPageLoadTest builds a browser page-load test.
func NewPageLoadTest(name, target string, agentIDs []string, opts HTTPOpts) *Test {
	s := newPageLoadSettings()
	s.AgentIDs = agentIDs
	s.PageLoad.Target = target
	s.Tasks = []string{TaskPageLoad}
	opts.apply(&s.HTTP)
	t := newTest(TestTypePageLoad, s)
	t.Name = name
	return t
}

// NewAgentTest builds a ping/trace test from the given agents to one target
// agent.
func NewAgentTest(name, target string, agentIDs []string) *Test {
	s := newAgentSettings()
	s.AgentIDs = agentIDs
	s.Agent.Target = target
	t := newTest(TestTypeAgent, s)
	t.Name = name
	return t
}
