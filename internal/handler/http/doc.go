// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the
// REST API. Cross-cutting concerns such as authentication, scope
// checking, request tracing, and access logging are handled in this
// package before requests are delegated to the service layer.
//
// Every route answers with the same JSON envelope ([models.Response]):
// a numeric result code, a human-readable message, and — where the
// route calls for it — a token or a list of user records.
package http
