// Package terminal holds the page controller behind the terminal view: the
// startup sequence, the command interpreter, search handling and the
// session state they share. It renders nothing itself; output goes through
// the Console interface as plain-text Line values.
package terminal
