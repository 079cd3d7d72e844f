// Package domain contains the core business entities of the growth tracking
// service: children, their anthropometric measurements, and nutrition logs.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
