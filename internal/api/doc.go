// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between HTTP clients and the
// card service, translating generation failures into status codes, stable
// error labels, and safe user-facing messages.
package api
