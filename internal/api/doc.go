// Package api provides the HTTP handlers, request and response models and
// error mapping of the growthcast JSON API.
package api
