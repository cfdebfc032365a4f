// Package matcher selects agents or tests by declarative rules evaluated
// against their wire objects. Rules are plain JSON/YAML-shaped data: an
// object keyed by property paths, with the reserved keys match_all,
// match_any, and one_of_each building composite matchers.
package matcher

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/synth-tools/synthetics-go/logging"
)

// Reserved rule keys.
const (
	KeyMatchAll  = "match_all"
	KeyMatchAny  = "match_any"
	KeyOneOfEach = "one_of_each"
)

// Matcher decides whether one wire object satisfies a rule.
type Matcher interface {
	Match(data ldvalue.Value) bool
}

// New builds a matcher from one rule object. Reserved keys build composite
// matchers; every other key is a property rule. Multiple keys in one object
// must all match.
func New(rule ldvalue.Value, logger logging.Logger) (Matcher, error) {
	if logger == nil {
		logger = logging.NullLogger()
	}
	return newAllMatcher(rule, logger)
}

func buildOne(key string, value ldvalue.Value, logger logging.Logger) (Matcher, error) {
	switch key {
	case KeyMatchAll:
		return newSetMatcher(value, logger, true)
	case KeyMatchAny:
		return newSetMatcher(value, logger, false)
	case KeyOneOfEach:
		return newOneOfEachMatcher(value)
	default:
		return newPropertyMatcher(key, value, logger)
	}
}

var regexValue = regexp.MustCompile(`^regex\((.*)\)$`)

// PropertyMatcher compares one property, addressed by a dotted key path,
// against a literal value or a regex(...) pattern.
type PropertyMatcher struct {
	path   []string
	value  ldvalue.Value
	regex  *regexp.Regexp
	logger logging.Logger
}

func newPropertyMatcher(key string, value ldvalue.Value, logger logging.Logger) (*PropertyMatcher, error) {
	m := &PropertyMatcher{path: strings.Split(key, "."), value: value, logger: logger}
	if value.IsString() {
		if groups := regexValue.FindStringSubmatch(value.StringValue()); groups != nil {
			rx, err := regexp.Compile(groups[1])
			if err != nil {
				return nil, fmt.Errorf("invalid regex in rule %q: %w", key, err)
			}
			m.regex = rx
		}
	}
	return m, nil
}

func (m *PropertyMatcher) Match(data ldvalue.Value) bool {
	obj := data
	for _, k := range m.path {
		next, ok := obj.TryGetByKey(k)
		if !ok {
			m.logger.Printf("object %s does not have property '%s'", data.JSONString(), strings.Join(m.path, "."))
			return false
		}
		obj = next
	}
	if m.regex != nil && obj.IsString() {
		return m.regex.MatchString(obj.StringValue())
	}
	return obj.Equal(m.value)
}

// AllMatcher matches when every sub-rule matches.
type AllMatcher struct {
	matchers []Matcher
}

func (m *AllMatcher) Match(data ldvalue.Value) bool {
	for _, sub := range m.matchers {
		if !sub.Match(data) {
			return false
		}
	}
	return true
}

// AnyMatcher matches when at least one sub-rule matches. An empty rule list
// matches everything.
type AnyMatcher struct {
	matchers []Matcher
}

func (m *AnyMatcher) Match(data ldvalue.Value) bool {
	if len(m.matchers) == 0 {
		return true
	}
	for _, sub := range m.matchers {
		if sub.Match(data) {
			return true
		}
	}
	return false
}

func newAllMatcher(rule ldvalue.Value, logger logging.Logger) (*AllMatcher, error) {
	matchers, err := buildMembers(rule, logger)
	if err != nil {
		return nil, err
	}
	return &AllMatcher{matchers: matchers}, nil
}

// newSetMatcher builds the composite for a match_all/match_any value, which
// is a list of rule objects.
func newSetMatcher(rules ldvalue.Value, logger logging.Logger, all bool) (Matcher, error) {
	if rules.Type() != ldvalue.ArrayType {
		return nil, fmt.Errorf("composite rule must be a list, got %s", rules.JSONString())
	}
	var matchers []Matcher
	for i := 0; i < rules.Count(); i++ {
		members, err := buildMembers(rules.GetByIndex(i), logger)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, members...)
	}
	if all {
		return &AllMatcher{matchers: matchers}, nil
	}
	return &AnyMatcher{matchers: matchers}, nil
}

func buildMembers(rule ldvalue.Value, logger logging.Logger) ([]Matcher, error) {
	if rule.Type() != ldvalue.ObjectType {
		return nil, fmt.Errorf("rule must be an object, got %s", rule.JSONString())
	}
	keys := rule.Keys()
	sort.Strings(keys)
	var matchers []Matcher
	for _, k := range keys {
		m, err := buildOne(k, rule.GetByKey(k), logger)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// OneOfEachMatcher matches each combination from the cross-product of the
// configured value lists at most once, consuming it. It is used to pick one
// representative object per combination out of a candidate list.
type OneOfEachMatcher struct {
	keys     []string
	matchSet map[string]bool
}

func newOneOfEachMatcher(spec ldvalue.Value) (*OneOfEachMatcher, error) {
	if spec.Type() != ldvalue.ObjectType {
		return nil, fmt.Errorf("one_of_each rule must be an object, got %s", spec.JSONString())
	}
	keys := spec.Keys()
	sort.Strings(keys)
	lists := make([][]ldvalue.Value, 0, len(keys))
	for _, k := range keys {
		v := spec.GetByKey(k)
		if v.Type() != ldvalue.ArrayType {
			return nil, fmt.Errorf("one_of_each values must be lists, got %s", v.JSONString())
		}
		items := make([]ldvalue.Value, 0, v.Count())
		for i := 0; i < v.Count(); i++ {
			items = append(items, v.GetByIndex(i))
		}
		lists = append(lists, items)
	}
	m := &OneOfEachMatcher{keys: keys, matchSet: map[string]bool{}}
	m.fill(lists, nil)
	return m, nil
}

func (m *OneOfEachMatcher) fill(lists [][]ldvalue.Value, prefix []string) {
	if len(lists) == 0 {
		m.matchSet[strings.Join(prefix, "|")] = true
		return
	}
	for _, v := range lists[0] {
		m.fill(lists[1:], append(prefix, v.JSONString()))
	}
}

func (m *OneOfEachMatcher) Match(data ldvalue.Value) bool {
	if len(m.matchSet) == 0 {
		return false
	}
	sig := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		sig = append(sig, data.GetByKey(k).JSONString())
	}
	key := strings.Join(sig, "|")
	if m.matchSet[key] {
		delete(m.matchSet, key)
		return true
	}
	return false
}
