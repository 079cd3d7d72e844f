package postgres

import "database/sql"

// nullableMeasurement maps an unrecorded (zero) measurement to SQL NULL.
func nullableMeasurement(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}

// measurementValue maps SQL NULL back to the unrecorded value 0.
func measurementValue(n sql.NullFloat64) float64 {
	if !n.Valid {
		return 0
	}
	return n.Float64
}
