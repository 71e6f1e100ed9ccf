// Package motion resolves cursor motions into regions.
//
// A Resolver turns a Motion and a count into a Result: the region from
// the starting position to the target, with the motion's wise-ness and
// inclusivity, and the target the cursor should move to. Motions clamp at
// the buffer edges. Motions without any target fail with ErrNoMatch and
// leave the cursor where it was.
//
// Searches are delegated to a Searcher so that the pattern engine stays
// outside the core. The ' and ` motions read a Marks table; a mark that is
// not set fails with ErrNoMark.
package motion
