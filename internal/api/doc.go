// Package api provides the HTTP handlers for the vocabulary scheduling API.
//
// Handlers are thin: they parse and validate the request, delegate to the
// service layer and translate service errors into sanitized HTTP responses.
// Shared helpers for JSON responses, request validation and trace IDs live
// in the shared subpackage; middleware lives in the middleware subpackage.
package api
