// Package dispatch interprets parsed test cases against a runtime. Every
// eligible case runs once per run mode against a fresh runtime instance;
// statements execute in source order with fail-fast semantics, and the
// runtime is disposed on every exit path.
package dispatch
