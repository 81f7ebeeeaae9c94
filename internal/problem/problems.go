package problem

import "net/http"

// Taxonomy constructors. Every failure leaving the core maps to exactly one
// of these, chosen by the kind of root cause. Detail strings here are the
// only ones a client ever sees; raw error text is never forwarded.

// Parse reports a malformed identifier or request body.
func Parse() *Problem {
	return NewUntyped(http.StatusBadRequest, "parsing problem")
}

// ExpiredCredential reports a session token past its validity window. This
// is the one verification sub-cause a legitimate client needs to
// distinguish, so it can re-authenticate.
func ExpiredCredential() *Problem {
	return NewUntyped(http.StatusBadRequest, "expired credential")
}

// AuthorizationFailure reports a missing or invalid session credential or
// an insufficient role. The detail must be one of the approved static
// strings; sub-causes are deliberately not distinguished beyond expiry.
func AuthorizationFailure(detail string) *Problem {
	return NewUntyped(http.StatusUnauthorized, "authorization failure").
		WithDetail(detail)
}

// NotFound reports a resource that does not exist.
func NotFound() *Problem {
	return NewUntyped(http.StatusNotFound, "not found")
}

// StorageUnavailable reports a persistence-layer connectivity, auth or DNS
// failure.
func StorageUnavailable() *Problem {
	return NewUntyped(http.StatusInternalServerError, "storage unavailable")
}

// BadStorageRequest reports a malformed command or bad argument sent to the
// persistence layer.
func BadStorageRequest() *Problem {
	return NewUntyped(http.StatusInternalServerError, "bad storage request")
}

// Encoding reports a persistence-layer encoding or decoding failure.
func Encoding() *Problem {
	return NewUntyped(http.StatusInternalServerError, "encoding problem")
}

// Timeout reports a persistence-layer timeout.
func Timeout() *Problem {
	return NewUntyped(http.StatusInternalServerError, "timeout")
}

// TokenProcessing reports a failure inside token signing or verification
// machinery: bad key material, algorithm mismatch, crypto errors.
func TokenProcessing() *Problem {
	return NewUntyped(http.StatusInternalServerError, "token processing error")
}

// Internal reports an unclassified failure surfaced at the boundary. The
// cause is logged server-side; the client sees only the generic title.
func Internal() *Problem {
	return NewUntyped(http.StatusInternalServerError, "internal error")
}
