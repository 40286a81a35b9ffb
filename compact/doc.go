// Package compact implements spec component C8: collapsing variables that
// always co-occur across a goal and its active constraints into a single
// effective variable before an LP is built, shrinking the row count from
// 2^(original count)-1 to 2^(compacted count)-1.
package compact
