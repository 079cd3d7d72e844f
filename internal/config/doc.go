// Package config loads application settings from GROWTHCAST_* environment
// variables and an optional YAML file, then validates them before any
// component is wired.
package config
