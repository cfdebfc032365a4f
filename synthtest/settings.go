package synthtest

// DefaultHTTPValidCodes and DefaultDNSValidCodes are the response codes the
// server treats as healthy unless a test overrides them.
var (
	DefaultHTTPValidCodes = []int{200, 201}
	DefaultDNSValidCodes  = []int{1, 2, 3}
)

// HealthSettings carries the alerting thresholds of a test.
type HealthSettings struct {
	LatencyCritical     int
	LatencyWarning      int
	PacketLossCritical  int
	PacketLossWarning   int
	JitterCritical      int
	JitterWarning       int
	HTTPLatencyCritical int
	HTTPLatencyWarning  int
	HTTPValidCodes      []int
	DNSValidCodes       []int
}

func newHealthSettings() HealthSettings {
	return HealthSettings{HTTPValidCodes: []int{}, DNSValidCodes: []int{}}
}

func (h *HealthSettings) Fields() []Field {
	return []Field{
		{Key: "latencyCritical", Value: Int(&h.LatencyCritical)},
		{Key: "latencyWarning", Value: Int(&h.LatencyWarning)},
		{Key: "packetLossCritical", Value: Int(&h.PacketLossCritical)},
		{Key: "packetLossWarning", Value: Int(&h.PacketLossWarning)},
		{Key: "jitterCritical", Value: Int(&h.JitterCritical)},
		{Key: "jitterWarning", Value: Int(&h.JitterWarning)},
		{Key: "httpLatencyCritical", Value: Int(&h.HTTPLatencyCritical)},
		{Key: "httpLatencyWarning", Value: Int(&h.HTTPLatencyWarning)},
		{Key: "httpValidCodes", Value: IntList(&h.HTTPValidCodes)},
		{Key: "dnsValidCodes", Value: IntList(&h.DNSValidCodes)},
	}
}

// MonitoringSettings configures alert activation for a test.
type MonitoringSettings struct {
	ActivationGracePeriod string
	ActivationTimeUnit    string
	ActivationTimeWindow  string
	ActivationTimes       string
	NotificationChannels  []string
}

func newMonitoringSettings() MonitoringSettings {
	return MonitoringSettings{
		ActivationGracePeriod: "2",
		ActivationTimeUnit:    "m",
		ActivationTimeWindow:  "5",
		ActivationTimes:       "3",
		NotificationChannels:  []string{},
	}
}

func (m *MonitoringSettings) Fields() []Field {
	return []Field{
		{Key: "activationGracePeriod", Value: String(&m.ActivationGracePeriod)},
		{Key: "activationTimeUnit", Value: String(&m.ActivationTimeUnit)},
		{Key: "activationTimeWindow", Value: String(&m.ActivationTimeWindow)},
		{Key: "activationTimes", Value: String(&m.ActivationTimes)},
		{Key: "notificationChannels", Value: StringList(&m.NotificationChannels)},
	}
}

// SingleTarget is the target descriptor of tests probing one destination
// (hostname, url, dns, page_load, agent).
type SingleTarget struct {
	Target string
}

func (t *SingleTarget) Fields() []Field {
	return []Field{{Key: "target", Value: String(&t.Target)}}
}

// MultiTarget is the target descriptor of tests probing a list of
// destinations (ip, network_grid, dns_grid).
type MultiTarget struct {
	Targets []string
}

func (t *MultiTarget) Fields() []Field {
	return []Field{{Key: "targets", Value: StringList(&t.Targets)}}
}

// TestSettings is the configuration bundle owned by a Test. Concrete types
// exist per test variant; they share SynTestSettings and differ in their
// target descriptor and task sub-objects.
type TestSettings interface {
	ConfigElement

	base() *SynTestSettings

	// taskRefs maps enabled task names to their configuration records. The
	// mapping is declared explicitly per variant; task names are never
	// resolved reflectively.
	taskRefs() map[string]task

	// cascading reports whether SetPeriod/SetTimeout without task names
	// applies to the task records rather than the test-level setting
	// (ping/trace family semantics).
	cascading() bool
}

// SynTestSettings holds the fields shared by every test variant.
type SynTestSettings struct {
	AgentIDs    []string
	Tasks       []string
	Health      HealthSettings
	Monitoring  MonitoringSettings
	Port        int
	Period      int
	Count       int
	Expiry      int
	Limit       int
	Protocol    Protocol
	Family      IPFamily
	RollupLevel int
	Servers     []string
}

func newSynTestSettings() SynTestSettings {
	return SynTestSettings{
		AgentIDs:    []string{},
		Tasks:       []string{TaskPing, TaskTraceroute},
		Health:      newHealthSettings(),
		Monitoring:  newMonitoringSettings(),
		Period:      DefaultPeriod,
		Expiry:      DefaultExpiry,
		Protocol:    ProtocolNone,
		Family:      IPFamilyDual,
		RollupLevel: 1,
		Servers:     []string{},
	}
}

func (s *SynTestSettings) baseFields() []Field {
	return []Field{
		{Key: "agentIds", Value: StringList(&s.AgentIDs)},
		{Key: "tasks", Value: StringList(&s.Tasks)},
		{Key: "healthSettings", Value: Element(&s.Health)},
		{Key: "monitoringSettings", Value: Element(&s.Monitoring)},
		{Key: "port", Value: Int(&s.Port)},
		{Key: "period", Value: Int(&s.Period)},
		{Key: "count", Value: Int(&s.Count)},
		{Key: "expiry", Value: Int(&s.Expiry)},
		{Key: "limit", Value: Int(&s.Limit)},
		{Key: "protocol", Value: Enum((*string)(&s.Protocol), protocolValues...)},
		{Key: "family", Value: Enum((*string)(&s.Family), ipFamilyValues...)},
		{Key: "rollupLevel", Value: Int(&s.RollupLevel)},
		{Key: "servers", Value: StringList(&s.Servers)},
	}
}

func (s *SynTestSettings) Fields() []Field           { return s.baseFields() }
func (s *SynTestSettings) base() *SynTestSettings    { return s }
func (s *SynTestSettings) taskRefs() map[string]task { return nil }
func (s *SynTestSettings) cascading() bool           { return false }

// PingTraceSettings is the shared settings type of the ping/trace test
// family (hostname, ip, mesh, network_grid, agent).
type PingTraceSettings struct {
	SynTestSettings
	Ping  PingTask
	Trace TraceTask
}

func newPingTraceSettings() PingTraceSettings {
	s := PingTraceSettings{
		SynTestSettings: newSynTestSettings(),
		Ping:            NewPingTask(),
		Trace:           NewTraceTask(),
	}
	s.Protocol = ProtocolICMP
	return s
}

func (s *PingTraceSettings) pingTraceFields() []Field {
	return append(s.baseFields(),
		Field{Key: "ping", Value: Element(&s.Ping)},
		Field{Key: "trace", Value: Element(&s.Trace)},
	)
}

func (s *PingTraceSettings) Fields() []Field { return s.pingTraceFields() }

func (s *PingTraceSettings) taskRefs() map[string]task {
	return map[string]task{TaskPing: &s.Ping, TaskTraceroute: &s.Trace}
}

func (s *PingTraceSettings) cascading() bool { return true }

// HostnameSettings configures a hostname test.
type HostnameSettings struct {
	PingTraceSettings
	Hostname SingleTarget
}

func newHostnameSettings() *HostnameSettings {
	return &HostnameSettings{PingTraceSettings: newPingTraceSettings()}
}

func (s *HostnameSettings) Fields() []Field {
	return append(s.pingTraceFields(), Field{Key: "hostname", Value: Element(&s.Hostname)})
}

// IPSettings configures an ip test.
type IPSettings struct {
	PingTraceSettings
	IP MultiTarget
}

func newIPSettings() *IPSettings {
	return &IPSettings{PingTraceSettings: newPingTraceSettings()}
}

func (s *IPSettings) Fields() []Field {
	return append(s.pingTraceFields(), Field{Key: "ip", Value: Element(&s.IP)})
}

// GridSettings configures a network_grid test.
type GridSettings struct {
	PingTraceSettings
	NetworkGrid MultiTarget
}

func newGridSettings() *GridSettings {
	return &GridSettings{PingTraceSettings: newPingTraceSettings()}
}

func (s *GridSettings) Fields() []Field {
	return append(s.pingTraceFields(), Field{Key: "networkGrid", Value: Element(&s.NetworkGrid)})
}

// AgentSettings configures an agent-to-agent test.
type AgentSettings struct {
	PingTraceSettings
	Agent SingleTarget
}

func newAgentSettings() *AgentSettings {
	return &AgentSettings{PingTraceSettings: newPingTraceSettings()}
}

func (s *AgentSettings) Fields() []Field {
	return append(s.pingTraceFields(), Field{Key: "agent", Value: Element(&s.Agent)})
}

// DNSSettings configures a dns test.
type DNSSettings struct {
	SynTestSettings
	DNS SingleTarget
}

func newDNSSettings() *DNSSettings {
	return &DNSSettings{SynTestSettings: newSynTestSettings()}
}

func (s *DNSSettings) Fields() []Field {
	return append(s.baseFields(), Field{Key: "dns", Value: Element(&s.DNS)})
}

// DNSGridSettings configures a dns_grid test.
type DNSGridSettings struct {
	SynTestSettings
	DNSGrid MultiTarget
}

func newDNSGridSettings() *DNSGridSettings {
	return &DNSGridSettings{SynTestSettings: newSynTestSettings()}
}

func (s *DNSGridSettings) Fields() []Field {
	return append(s.baseFields(), Field{Key: "dnsGrid", Value: Element(&s.DNSGrid)})
}

// URLSettings configures a url test. The http task is always present; ping
// and trace tasks exist as records but run only when enabled in Tasks.
type URLSettings struct {
	SynTestSettings
	URL   SingleTarget
	Ping  PingTask
	Trace TraceTask
	HTTP  HTTPTask
}

func newURLSettings() *URLSettings {
	return &URLSettings{
		SynTestSettings: newSynTestSettings(),
		Ping:            NewPingTask(),
		Trace:           NewTraceTask(),
		HTTP:            NewHTTPTask(),
	}
}

func (s *URLSettings) Fields() []Field {
	return append(s.baseFields(),
		Field{Key: "url", Value: Element(&s.URL)},
		Field{Key: "ping", Value: Element(&s.Ping)},
		Field{Key: "trace", Value: Element(&s.Trace)},
		Field{Key: "http", Value: Element(&s.HTTP)},
	)
}

func (s *URLSettings) taskRefs() map[string]task {
	return map[string]task{TaskPing: &s.Ping, TaskTraceroute: &s.Trace, TaskHTTP: &s.HTTP}
}

// PageLoadSettings configures a page_load test.
type PageLoadSettings struct {
	SynTestSettings
	PageLoad SingleTarget
	HTTP     HTTPTask
}

func newPageLoadSettings() *PageLoadSettings {
	return &PageLoadSettings{
		SynTestSettings: newSynTestSettings(),
		HTTP:            NewHTTPTask(),
	}
}

func (s *PageLoadSettings) Fields() []Field {
	return append(s.baseFields(),
		Field{Key: "pageLoad", Value: Element(&s.PageLoad)},
		Field{Key: "http", Value: Element(&s.HTTP)},
	)
}

func (s *PageLoadSettings) taskRefs() map[string]task {
	return map[string]task{TaskHTTP: &s.HTTP}
}
