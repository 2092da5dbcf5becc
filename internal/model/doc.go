// Package model defines domain data structures shared across the app: queue
// items, status enums, trim ranges, and waveform points. Structures mirror
// the wire format broadcast by the acquisition backend and are designed for
// explicit state transitions.
package model
