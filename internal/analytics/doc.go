// Package analytics turns a user's job applications into dashboard numbers,
// aging classifications, upcoming interview lists and coaching insights.
//
// Everything here is a pure function of its inputs: the job snapshot, the
// reference time and, for the two randomised insight rules, a Random source.
// Nothing in this package performs I/O or logs.
package analytics
