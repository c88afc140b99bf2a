package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme. It is also the
// token_type returned to clients.
const BearerScheme = "bearer"
