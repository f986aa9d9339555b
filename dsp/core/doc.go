// Package core holds small numeric and buffer helpers shared by the
// measurement packages, plus the functional options used to configure
// the generator sample rate.
package core
