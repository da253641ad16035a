// Package diff compares code outlines produced by successive parses
package diff

import "github.com/pstuifzand/codenav/internal/model"

// Equal reports whether two outline trees are the same for display purposes.
//
// Items are keyed by ID only. Members are compared, in order, only when both
// items are classes or both are namespaces; any other pairing (including a
// class against a method with the same ID) compares IDs alone. A nil item is
// never equal to anything, not even another nil.
func Equal(x, y *model.Item) bool {
	if x == nil || y == nil {
		return false
	}
	if x == y {
		return true
	}

	membersAreEqual := true
	if x.Variant() == model.VariantClass && y.Variant() == model.VariantClass {
		membersAreEqual = EqualSequences(x.Members, y.Members)
	}
	if x.Variant() == model.VariantNamespace && y.Variant() == model.VariantNamespace {
		membersAreEqual = EqualSequences(x.Members, y.Members)
	}

	return x.ID == y.ID && membersAreEqual
}

// EqualSequences compares two item lists pairwise in order with Equal
func EqualSequences(x, y []*model.Item) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Equal(x[i], y[i]) {
			return false
		}
	}
	return true
}
