package problem

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestFromStorage_Classification(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		title string
	}{
		{
			name:  "deadline exceeded",
			err:   context.DeadlineExceeded,
			title: "timeout",
		},
		{
			name:  "wrapped deadline",
			err:   fmt.Errorf("find user: %w", context.DeadlineExceeded),
			title: "timeout",
		},
		{
			name:  "marshal failure",
			err:   mongo.MarshalError{Err: errors.New("no encoder for type")},
			title: "encoding problem",
		},
		{
			name:  "command error",
			err:   mongo.CommandError{Code: 11000, Message: "duplicate key"},
			title: "bad storage request",
		},
		{
			name:  "write exception",
			err:   mongo.WriteException{},
			title: "bad storage request",
		},
		{
			name:  "nil document",
			err:   mongo.ErrNilDocument,
			title: "bad storage request",
		},
		{
			name:  "client disconnected",
			err:   mongo.ErrClientDisconnected,
			title: "storage unavailable",
		},
		{
			name:  "unclassified driver error",
			err:   errors.New("server selection error: context deadline not involved"),
			title: "storage unavailable",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := FromStorage(tc.err)
			if p == nil {
				t.Fatalf("expected a problem")
			}
			if p.Title() != tc.title {
				t.Fatalf("title = %q, want %q", p.Title(), tc.title)
			}
			if p.Status() != 500 {
				t.Fatalf("status = %d, want 500", p.Status())
			}
			if p.Cause() == nil {
				t.Fatalf("cause should carry the original error")
			}
		})
	}

	if FromStorage(nil) != nil {
		t.Fatalf("nil error should map to nil problem")
	}
}

func TestFromDecode(t *testing.T) {
	p := FromDecode(errors.New("cannot decode array into uuid.UUID"))
	if p.Status() != 500 || p.Title() != "encoding problem" {
		t.Fatalf("got %d %q", p.Status(), p.Title())
	}
	if FromDecode(nil) != nil {
		t.Fatalf("nil error should map to nil problem")
	}
}

func TestFromVerification_ExpiryIsDistinguished(t *testing.T) {
	p := FromVerification(fmt.Errorf("token invalid: %w", jwt.ErrTokenExpired))
	if p.Status() != 400 || p.Title() != "expired credential" {
		t.Fatalf("expired token mapped to %d %q", p.Status(), p.Title())
	}
}

func TestFromVerification_OtherCausesCollapse(t *testing.T) {
	for _, err := range []error{
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrTokenMalformed,
		jwt.ErrTokenUnverifiable,
		errors.New("some other verification failure"),
	} {
		p := FromVerification(err)
		if p.Status() != 401 || p.Title() != "authorization failure" {
			t.Fatalf("%v mapped to %d %q", err, p.Status(), p.Title())
		}
		if p.Detail() != "Session credential was missing or invalid." {
			t.Fatalf("unexpected detail %q", p.Detail())
		}
	}
}

func TestFromSigning(t *testing.T) {
	p := FromSigning(errors.New("key is of invalid type"))
	if p.Status() != 500 || p.Title() != "token processing error" {
		t.Fatalf("got %d %q", p.Status(), p.Title())
	}
}
