package problem

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
)

// FromStorage classifies a MongoDB driver error into the taxonomy. Callers
// handle mongo.ErrNoDocuments themselves (absence is not a driver failure);
// everything else lands in one of the storage rows.
func FromStorage(err error) *Problem {
	if err == nil {
		return nil
	}

	var (
		marshalErr mongo.MarshalError
		decodeErr  *bsoncodec.DecodeError
		cmdErr     mongo.CommandError
		writeErr   mongo.WriteException
		bulkErr    mongo.BulkWriteException
	)

	switch {
	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return Timeout().WithCause(err)
	case errors.As(err, &marshalErr), errors.As(err, &decodeErr):
		return Encoding().WithCause(err)
	case errors.As(err, &cmdErr), errors.As(err, &writeErr), errors.As(err, &bulkErr),
		errors.Is(err, mongo.ErrNilDocument):
		return BadStorageRequest().WithCause(err)
	case mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return StorageUnavailable().WithCause(err)
	default:
		// Server selection, DNS and auth failures all surface as
		// unreachable storage.
		return StorageUnavailable().WithCause(err)
	}
}

// FromDecode classifies a document (de)serialization failure detected while
// reading or writing storage documents.
func FromDecode(err error) *Problem {
	if err == nil {
		return nil
	}
	return Encoding().WithCause(err)
}

// FromVerification classifies a token verification failure. Only expiry is
// distinguished; every other sub-cause (bad signature, wrong algorithm,
// malformed structure) collapses into the generic authorization failure so
// probing clients learn nothing about why a forged token was rejected.
func FromVerification(err error) *Problem {
	if err == nil {
		return nil
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ExpiredCredential().WithCause(err)
	}
	return AuthorizationFailure("Session credential was missing or invalid.").WithCause(err)
}

// FromSigning classifies a token issuance failure. Signing only fails on
// malformed key material or crypto errors, which are server-side defects.
func FromSigning(err error) *Problem {
	if err == nil {
		return nil
	}
	return TokenProcessing().WithCause(err)
}
