// Package model defines the parsed representation of a test suite: the
// Statement sum type produced by the line classifier, the TestCase and Suite
// containers produced by the block splitter, and the small enums (AgentKind,
// RunMode) shared by the parser, filter, and dispatcher.
//
// Everything in this package is immutable after construction.
package model
