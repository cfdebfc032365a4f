package synthtest

// Server-side defaults applied to new tests and tasks.
const (
	DefaultPeriod = 60   // seconds
	DefaultExpiry = 5000 // milliseconds
)

// Wire names of the tasks that can be enabled on a test. These are the values
// accepted in SynTestSettings.Tasks and by Test.SetPeriod/SetTimeout.
const (
	TaskPing       = "ping"
	TaskTraceroute = "traceroute"
	TaskHTTP       = "http"
	TaskDNS        = "dns"
	TaskPageLoad   = "page-load"
)

// task is the common surface of the per-task configuration records that
// Test.SetPeriod/SetTimeout/MaxPeriod operate on.
type task interface {
	ConfigElement
	period() int
	setPeriod(seconds int)
	setExpiry(millis int)
}

// PingTask configures the ping probe of a test.
type PingTask struct {
	Period int
	Count  int
	Expiry int
}

func NewPingTask() PingTask {
	return PingTask{Period: DefaultPeriod, Count: 5, Expiry: 3000}
}

func (t *PingTask) Fields() []Field {
	return []Field{
		{Key: "period", Value: Int(&t.Period)},
		{Key: "count", Value: Int(&t.Count)},
		{Key: "expiry", Value: Int(&t.Expiry)},
	}
}

func (t *PingTask) period() int           { return t.Period }
func (t *PingTask) setPeriod(seconds int) { t.Period = seconds }
func (t *PingTask) setExpiry(millis int)  { t.Expiry = millis }

// TraceTask configures the traceroute probe of a test.
type TraceTask struct {
	Period   int
	Count    int
	Protocol Protocol
	Port     int
	Expiry   int
	Limit    int
}

func NewTraceTask() TraceTask {
	return TraceTask{Period: DefaultPeriod, Count: 3, Protocol: ProtocolICMP, Expiry: 22500, Limit: 30}
}

func (t *TraceTask) Fields() []Field {
	return []Field{
		{Key: "period", Value: Int(&t.Period)},
		{Key: "count", Value: Int(&t.Count)},
		{Key: "protocol", Value: Enum((*string)(&t.Protocol), protocolValues...)},
		{Key: "port", Value: Int(&t.Port)},
		{Key: "expiry", Value: Int(&t.Expiry)},
		{Key: "limit", Value: Int(&t.Limit)},
	}
}

func (t *TraceTask) period() int           { return t.Period }
func (t *TraceTask) setPeriod(seconds int) { t.Period = seconds }
func (t *TraceTask) setExpiry(millis int)  { t.Expiry = millis }

// HTTPTask configures the HTTP fetch probe of url and page-load tests.
type HTTPTask struct {
	Period          int
	Expiry          int
	Method          string
	Headers         map[string]string
	Body            string
	IgnoreTLSErrors bool
	CSSSelectors    map[string]string
}

func NewHTTPTask() HTTPTask {
	return HTTPTask{Method: "GET", Headers: map[string]string{}, CSSSelectors: map[string]string{}}
}

func (t *HTTPTask) Fields() []Field {
	return []Field{
		{Key: "period", Value: Int(&t.Period)},
		{Key: "expiry", Value: Int(&t.Expiry)},
		{Key: "method", Value: String(&t.Method)},
		{Key: "headers", Value: StringMap(&t.Headers)},
		{Key: "body", Value: String(&t.Body)},
		{Key: "ignoreTlsErrors", Value: Bool(&t.IgnoreTLSErrors)},
		{Key: "cssSelectors", Value: StringMap(&t.CSSSelectors)},
	}
}

func (t *HTTPTask) period() int           { return t.Period }
func (t *HTTPTask) setPeriod(seconds int) { t.Period = seconds }
func (t *HTTPTask) setExpiry(millis int)  { t.Expiry = millis }
