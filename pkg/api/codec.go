// Package api is the wire surface between the app and the groovematch
// backend: Connect procedure names, message types, clients and the mapping
// between error kinds and Connect codes.
//
// Messages are plain Go structs carried by a JSON codec, so the surface can be
// used without generated code.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals messages as JSON. It is registered under the "json" name,
// which replaces Connect's default protojson codec on handlers built with
// WithCodec.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// WithCodec is the option both handlers and clients must use.
func WithCodec() connect.Option {
	return connect.WithCodec(Codec{})
}
