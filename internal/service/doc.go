// Package service contains the application use cases of the growth tracker.
// It coordinates the stores defined in internal/store with the growth engine
// in internal/domain/growth.
//
// Key components:
//
//   - ChildService: registers children and looks them up
//   - RecordService: records growth and nutrition logs and lists growth logs
//     with their percentile placement
//   - Forecaster: runs the engine over caller-supplied records
//   - PredictionService: fetches a child's stored records and forecasts them
//
// Services translate store errors into the sentinel errors declared in
// errors.go, which the API layer maps to HTTP status codes. The service layer
// depends on store interfaces only, never on a concrete backend.
package service
