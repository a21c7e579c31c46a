// Package codec は content-subtype "json" の gRPC コーデックを登録します。
// protobuf メッセージは protojson で、それ以外の Go 構造体は encoding/json でエンコードします。
package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Name は grpc.CallContentSubtype に指定する名前です。
const Name = "json"

// JSON は gRPC の encoding.Codec 実装です。
type JSON struct{}

func init() {
	encoding.RegisterCodec(JSON{})
}

// Name はコーデック名を返します。
func (JSON) Name() string {
	return Name
}

// Marshal は v を JSON にエンコードします。
func (JSON) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal は data を v にデコードします。空のボディはゼロ値として扱います。
func (JSON) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: unmarshal %T: %w", v, err)
	}
	return nil
}
