// Package plot renders 2D embedding scatter charts, one dot series per
// class, to PNG via github.com/wcharczuk/go-chart/v2.
//
// Color assignment is an explicit contract, not accidental iteration order:
// classes are sorted lexicographically and indexed into the default palette
// in that order (see ClassIndex). The same class set therefore always gets
// the same colors, independent of point order.
package plot
