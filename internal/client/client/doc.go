// Package client talks to the auth and task services over HTTP.
//
// HTTPClient keeps the access token obtained by Register or Login and sends
// it as a bearer token on every task request. Non-2xx responses become
// *APIError values that match the sentinels in internal/common via
// errors.Is; transport failures match ErrUnavailable.
package client
