package common

// AuthorizationHeaderName carries the session token on outbound HTTP requests
// in the form "Bearer <token>".
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix of the Authorization header value.
const BearerPrefix = "Bearer "
