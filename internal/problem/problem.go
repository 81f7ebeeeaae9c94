// Package problem implements the RFC 7807 error envelope every failure in
// the system is normalized into before it reaches a caller. Problems are
// assembled builder-style at the detection site, optionally enriched with
// diagnostic fields, and rendered to the wire exactly once at the HTTP
// boundary.
package problem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// ContentType is the media type problems are rendered as.
const ContentType = "application/problem+json"

// TypeBlank marks a problem that has no stable public type identifier.
const TypeBlank = "about:blank"

// Problem carries an HTTP status, a type URI, a title and optional
// detail/instance members, plus an open set of extension fields whose
// insertion order is preserved in the rendered body.
type Problem struct {
	status   int
	typeURI  string
	title    string
	detail   string
	instance string

	keys   []string
	fields map[string]any

	cause error
}

// New constructs a typed problem. Status, type and title are always present
// in the rendered form.
func New(status int, typeURI, title string) *Problem {
	return &Problem{
		status:  status,
		typeURI: typeURI,
		title:   title,
		fields:  make(map[string]any),
	}
}

// NewUntyped constructs a problem with the generic "about:blank" type, used
// for failures that have no stable public type identifier yet.
func NewUntyped(status int, title string) *Problem {
	return New(status, TypeBlank, title)
}

// WithDetail sets the human-readable detail string.
func (p *Problem) WithDetail(detail string) *Problem {
	p.detail = detail
	return p
}

// WithInstance sets the instance URI identifying this occurrence.
func (p *Problem) WithInstance(uri string) *Problem {
	p.instance = uri
	return p
}

// WithField sets an extension field. Re-setting a key overwrites its value
// without changing its position in the rendered body.
func (p *Problem) WithField(key string, value any) *Problem {
	if _, exists := p.fields[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.fields[key] = value
	return p
}

// WithCause attaches the underlying error for boundary-side logging. The
// cause is never rendered to the client.
func (p *Problem) WithCause(err error) *Problem {
	p.cause = err
	return p
}

// Status returns the HTTP status code.
func (p *Problem) Status() int { return p.status }

// Type returns the problem type URI.
func (p *Problem) Type() string { return p.typeURI }

// Title returns the short human-readable summary.
func (p *Problem) Title() string { return p.title }

// Detail returns the detail string, empty when unset.
func (p *Problem) Detail() string { return p.detail }

// Field returns an extension field value and whether it was set.
func (p *Problem) Field(key string) (any, bool) {
	v, ok := p.fields[key]
	return v, ok
}

// Cause returns the underlying error, nil when none was attached.
func (p *Problem) Cause() error { return p.cause }

// Error satisfies the error interface so a Problem can travel through
// ordinary error returns.
func (p *Problem) Error() string {
	return fmt.Sprintf("%d %s: %s", p.status, http.StatusText(p.status), p.title)
}

// Render produces the wire form: the HTTP status code and the
// application/problem+json body. Extension fields appear after the members
// required by RFC 7807, in insertion order.
func (p *Problem) Render() (int, []byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeMember(&buf, "type", p.typeURI, true); err != nil {
		return 0, nil, err
	}
	if err := writeMember(&buf, "title", p.title, false); err != nil {
		return 0, nil, err
	}
	if err := writeMember(&buf, "status", p.status, false); err != nil {
		return 0, nil, err
	}
	if p.detail != "" {
		if err := writeMember(&buf, "detail", p.detail, false); err != nil {
			return 0, nil, err
		}
	}
	if p.instance != "" {
		if err := writeMember(&buf, "instance", p.instance, false); err != nil {
			return 0, nil, err
		}
	}
	for _, key := range p.keys {
		if err := writeMember(&buf, key, p.fields[key], false); err != nil {
			return 0, nil, err
		}
	}

	buf.WriteByte('}')
	return p.status, buf.Bytes(), nil
}

// MarshalJSON renders the body only, mainly for tests and logging.
func (p *Problem) MarshalJSON() ([]byte, error) {
	_, body, err := p.Render()
	return body, err
}

func writeMember(buf *bytes.Buffer, key string, value any, first bool) error {
	if !first {
		buf.WriteByte(',')
	}
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal problem field %q: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
