package record

import (
	"fmt"
	"mime"

	"github.com/go-logr/logr"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Content types accepted by ParseContent besides plain JSON.
const (
	ContentTypeProto     = "application/x-protobuf"
	ContentTypeProtoJSON = "application/x-protobuf+json"
)

// FromStruct wraps a protobuf Struct.
func FromStruct(s *structpb.Struct, logger logr.Logger) Record {
	if s == nil {
		return New(nil, logger)
	}
	return New(s.AsMap(), logger)
}

// ParseProtoJSON decodes a protojson-encoded google.protobuf.Struct.
func ParseProtoJSON(data []byte, logger logr.Logger) (Record, error) {
	var s structpb.Struct
	uo := protojson.UnmarshalOptions{DiscardUnknown: true}
	if err := uo.Unmarshal(data, &s); err != nil {
		return Record{}, fmt.Errorf("record: decode struct: %w", err)
	}
	return FromStruct(&s, logger), nil
}

// ParseProto decodes a binary google.protobuf.Struct.
func ParseProto(data []byte, logger logr.Logger) (Record, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return Record{}, fmt.Errorf("record: decode struct: %w", err)
	}
	return FromStruct(&s, logger), nil
}

// ParseContent picks the decoder for contentType. Parameters such as charset
// are ignored, and anything that is not a protobuf type is read as JSON.
func ParseContent(contentType string, data []byte, logger logr.Logger) (Record, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = ""
	}
	switch mt {
	case ContentTypeProto:
		return ParseProto(data, logger)
	case ContentTypeProtoJSON:
		return ParseProtoJSON(data, logger)
	}
	return Parse(data, logger)
}
