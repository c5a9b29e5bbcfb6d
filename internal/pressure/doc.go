// Package pressure owns the plantar-pressure data model: frames of
// per-sensor readings, the sensor layout on the foot canvas, region
// naming, calibration and peak detection.
//
// A Frame is immutable once constructed. Missing readings are carried
// as NaN and skipped by every consumer. No I/O happens here; frames
// are produced by the sample store or the serial ingest path.
package pressure
