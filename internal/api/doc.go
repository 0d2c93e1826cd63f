// Package api provides an HTTP client for the LuminaAI music generation service.
//
// # Overview
//
// This package defines the API client for communicating with the remote
// LuminaAI backend. It handles HTTP communication, JSON serialization, and
// type-safe representation of users, token pairs, and generation records.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the LuminaAI API schema
//   - result.go: The tri-state Result type used for every remote call
//
// # The Result Type
//
// Every operation returns a Result[T] rather than a bare (T, error) pair.
// A Result is in exactly one of three states:
//
//   - Loading: The call is still in flight (only emitted on Watch streams)
//   - OK: The call succeeded and Value() holds the payload
//   - Failed: The call failed and Message() holds human-readable text
//
// A failure never carries a partial payload and a success never carries a
// message. Error text is extracted from the server's JSON error envelope
// when present, with a generic fallback otherwise, so the value is always
// suitable for direct display.
//
// # Client Usage
//
// Create a client with Options; every field has a usable default:
//
//	client, err := api.New(api.Options{
//		BaseURL:   "https://luminaai.zesbe.my.id/api/v1",
//		Transport: authTransport,
//		Tokens:    credStore,
//	})
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	res := client.FetchGenerations(ctx, "music", 50)
//	if res.Failed() {
//		log.Printf("fetch failed: %s", res.Message())
//	}
//
// # API Endpoints
//
// The client covers the full surface the application needs:
//
//   - POST auth/login, auth/register, auth/refresh: Credential exchange
//   - GET profile: Current user lookup (also the startup session probe)
//   - GET generations, explore: Record lists with type/limit query params
//   - GET generations/{id}: Single record lookup
//   - POST generations/{id}/favorite, /public: Boolean toggles
//   - DELETE generations/{id}: Record removal
//   - POST music/generate: Submit a new generation request
//
// The three auth exchanges persist the returned token pair through the
// TokenStore before reporting success, so a caller can never observe a
// logged-in state whose tokens were not written.
//
// # Watch Streams
//
// FetchGenerations and FetchExplore have Watch counterparts that return a
// channel. The channel emits a Loading result immediately, then exactly one
// terminal result, then closes. Stores consume these to drive their
// loading flags without managing goroutines themselves.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: lumina/0.1 headers
//   - Have a 15-second timeout (configurable via Options)
//   - Return wrapped errors with context about what failed
//
// # Error Handling
//
// The client distinguishes between several error types:
//
//   - Client initialization errors: Invalid base URL format
//   - Network errors: Connection refused, timeout, DNS failure
//   - HTTP errors: 4xx/5xx status codes, with the server's own error or
//     message field surfaced when the body carries one
//   - Deserialization errors: Malformed JSON responses
//
// Example failure messages:
//   - "invalid credentials" (server-provided)
//   - "api profile returned status 500" (fallback)
//   - "execute request: dial tcp: connection refused"
//
// # Authentication
//
// The client itself never touches the Authorization header. Bearer
// attachment, 401 detection, and the refresh-and-retry handshake all live
// in the transport it is constructed with (see internal/auth). The client
// only persists token pairs that arrive in auth exchange responses.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
//
// # Testing Considerations
//
// When testing code that uses this package:
//   - Use httptest.Server to mock the LuminaAI API
//   - Test both success and error paths
//   - Verify that auth exchanges persist tokens before returning
//   - Check handling of malformed JSON responses
package api
