// Package growth implements the growth prediction and analysis engine.
//
// Given a child's anthropometric history (weight, length/height, head
// circumference) and optional nutrition logs, it estimates growth velocity,
// places measurements on WHO reference curves, scores nutrition, growth
// regularity and percentile tracking, and forecasts the coming months with a
// blended confidence score and advisory recommendations.
//
// The engine is pure computation: it never fails, resolves missing or
// insufficient data to documented neutral defaults, and never mutates its
// inputs. Fetching the records it consumes is the caller's concern.
package growth
