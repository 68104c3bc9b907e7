// Package convert maps metadata documents from the v1.2/1.3 shape to v1.4.
//
// Transform is pure: the only input that varies between runs is the
// conversion time, which the caller captures once and passes in Options.
package convert
