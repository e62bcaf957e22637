// Package api handles incoming HTTP requests for authors and books: request
// decoding and validation, translation to service calls, and response
// formatting. Every failure goes through HandleAPIError so clients see one
// uniform error envelope.
package api
