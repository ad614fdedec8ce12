// Package parser turns raw suite files into the structured model: a
// preprocessor normalizes the text, a line classifier maps each body line to
// exactly one model.Statement variant, and a block splitter groups lines
// into named test cases using the indentation grammar.
//
// All parse errors are fatal to the enclosing file; nothing is silently
// dropped.
package parser
