// Package diagtests runs labeled symptom profiles against the diagnosis service and classifies
// what comes back.
//
// Talking to the service is the job of the client package, and the cases themselves come from
// the cases package. This package decides what counts as a pass, sequences the run, and reports
// the results.
package diagtests
