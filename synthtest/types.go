// Package synthtest models synthetic test configurations and their JSON wire
// format. Every configuration object implements ConfigElement, which drives
// one generic serialize/deserialize code path; concrete test variants are
// produced either by their New*Test factories or by decoding server data with
// TestFromWire.
package synthtest

// TestType identifies the kind of synthetic test. The values are part of the
// wire contract.
type TestType string

const (
	TestTypeNone        TestType = "<invalid>"
	TestTypeAgent       TestType = "agent"
	TestTypeBGPMonitor  TestType = "bgp_monitor"
	TestTypeDNS         TestType = "dns"
	TestTypeDNSGrid     TestType = "dns_grid"
	TestTypeFlow        TestType = "flow"
	TestTypeHostname    TestType = "hostname"
	TestTypeIP          TestType = "ip"
	TestTypeMesh        TestType = "application_mesh"
	TestTypeNetworkGrid TestType = "network_grid"
	TestTypePageLoad    TestType = "page_load"
	TestTypeURL         TestType = "url"
)

// TestStatus is the lifecycle state of a test as reported by the server.
type TestStatus string

const (
	TestStatusNone    TestStatus = "<invalid>"
	TestStatusActive  TestStatus = "TEST_STATUS_ACTIVE"
	TestStatusPaused  TestStatus = "TEST_STATUS_PAUSED"
	TestStatusDeleted TestStatus = "TEST_STATUS_DELETED"
)

// IPFamily selects the address families a test probes.
type IPFamily string

const (
	IPFamilyUnspecified IPFamily = "IP_FAMILY_UNSPECIFIED"
	IPFamilyDual        IPFamily = "IP_FAMILY_DUAL"
	IPFamilyV4          IPFamily = "IP_FAMILY_V4"
	IPFamilyV6          IPFamily = "IP_FAMILY_V6"
)

// Protocol is the transport protocol used by ping/trace tasks.
type Protocol string

const (
	ProtocolNone Protocol = ""
	ProtocolICMP Protocol = "icmp"
	ProtocolUDP  Protocol = "udp"
	ProtocolTCP  Protocol = "tcp"
)

var testTypeValues = []string{
	string(TestTypeNone),
	string(TestTypeAgent),
	string(TestTypeBGPMonitor),
	string(TestTypeDNS),
	string(TestTypeDNSGrid),
	string(TestTypeFlow),
	string(TestTypeHostname),
	string(TestTypeIP),
	string(TestTypeMesh),
	string(TestTypeNetworkGrid),
	string(TestTypePageLoad),
	string(TestTypeURL),
}

var testStatusValues = []string{
	string(TestStatusNone),
	string(TestStatusActive),
	string(TestStatusPaused),
	string(TestStatusDeleted),
}

var ipFamilyValues = []string{
	string(IPFamilyUnspecified),
	string(IPFamilyDual),
	string(IPFamilyV4),
	string(IPFamilyV6),
}

var protocolValues = []string{
	string(ProtocolNone),
	string(ProtocolICMP),
	string(ProtocolUDP),
	string(ProtocolTCP),
}
