// Package codec implements the hand-written structured-text codec that
// serializes sessions to and from their JSON file/wire form.
//
// The format is a flat array of flat object literals. Records are encoded
// with a fixed key order; decoding is key-based and therefore insensitive to
// field order and tolerant of unknown keys, which keeps old binaries able to
// read files written by newer ones.
//
// All functions in this package are pure and stateless: no I/O, no shared
// mutable state, safe for concurrent use on independent inputs.
package codec

import "errors"

// ErrMalformedRecord is returned by DecodeSession when a required field is
// missing or ill-typed within one object literal. DecodeSessions catches it
// per element and drops the damaged record instead of failing the whole
// collection.
var ErrMalformedRecord = errors.New("malformed record")

// ErrMalformedCollection is returned by DecodeSessions when the outer
// bracket structure is absent. It always aborts the whole decode; no
// partial list is returned.
var ErrMalformedCollection = errors.New("malformed collection")
