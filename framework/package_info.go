// Package framework contains the low-level pieces of the test harness that are not specific
// to the diagnosis service: debug loggers, case filters, and the panic guard used to keep a
// single misbehaving case from aborting a whole run.
//
// The domain-specific code that knows how to talk to the diagnosis service, and what a
// passing case looks like, is in the diagtests and client packages.
package framework
