package synthtest

import (
	"fmt"
	"sort"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Compare walks two wire objects in lock-step and returns one human-readable
// line per discrepancy: keys present on only one side, keys whose value types
// differ, and keys whose values differ. Nested objects are compared
// recursively; an empty result means the objects are logically equal.
//
// Keys are visited in sorted order at every level so the output is
// deterministic.
func Compare(left, right ldvalue.Value) []string {
	return compareObjects(left, right, "")
}

// CompareTests compares the serialized forms of two tests.
func CompareTests(left, right *Test) []string {
	return Compare(left.ToWire(), right.ToWire())
}

func compareObjects(left, right ldvalue.Value, path string) []string {
	var diffs []string
	leftKeys := sortedKeys(left)
	for _, k := range leftKeys {
		if _, ok := right.TryGetByKey(k); !ok {
			diffs = append(diffs, fmt.Sprintf("%s: %s not in right", path, k))
		}
	}
	for _, k := range sortedKeys(right) {
		if _, ok := left.TryGetByKey(k); !ok {
			diffs = append(diffs, fmt.Sprintf("%s: %s not in left", path, k))
		}
	}
	for _, k := range leftKeys {
		rv, ok := right.TryGetByKey(k)
		if !ok {
			continue
		}
		lv := left.GetByKey(k)
		keyPath := path + "." + k
		switch {
		case lv.Type() != rv.Type():
			diffs = append(diffs, fmt.Sprintf("%s: incompatible types (left: %s right: %s)",
				keyPath, lv.Type(), rv.Type()))
		case lv.Type() == ldvalue.ObjectType:
			diffs = append(diffs, compareObjects(lv, rv, keyPath)...)
		default:
			if !lv.Equal(rv) {
				diffs = append(diffs, fmt.Sprintf("%s: different value (left: %s right: %s)",
					keyPath, lv.JSONString(), rv.JSONString()))
			}
		}
	}
	return diffs
}

func sortedKeys(v ldvalue.Value) []string {
	keys := v.Keys()
	sort.Strings(keys)
	return keys
}
