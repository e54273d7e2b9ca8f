// Package apiconnect wires the fairsplit RPC services to Connect handlers and
// clients. Messages are plain Go structs carried with a JSON codec.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

const (
	codecNameJSON            = "json"
	codecNameJSONCharsetUTF8 = "json; charset=utf-8"
)

// jsonCodec marshals messages with encoding/json.
type jsonCodec struct {
	name string
}

func (c jsonCodec) Name() string { return c.name }

func (c jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (c jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

func handlerCodecs() []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(jsonCodec{name: codecNameJSON}),
		connect.WithCodec(jsonCodec{name: codecNameJSONCharsetUTF8}),
	}
}

func clientCodec() connect.ClientOption {
	return connect.WithCodec(jsonCodec{name: codecNameJSON})
}
