// Package trace decides which diagnostic modules emit output, based on the
// TRACE environment variable shared with the optimizer binary.
//
// TRACE is a comma-separated list of directives. A bare integer sets the
// global level ("3" traces everything); "module:level" enables one module
// ("REDEX:1"). A directive with level 0 or below enables nothing.
// Directives that match neither shape are ignored without any output, so a
// stray value in the environment never breaks a run or adds noise.
package trace
