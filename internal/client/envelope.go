package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EnvelopeKind names the shape a read response arrived in.
type EnvelopeKind int

const (
	EnvelopeEmpty EnvelopeKind = iota
	EnvelopeDirect
	EnvelopeWrapped
	EnvelopeWrappedObject
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeDirect:
		return "direct"
	case EnvelopeWrapped:
		return "wrapped"
	case EnvelopeWrappedObject:
		return "wrapped-object"
	default:
		return "empty"
	}
}

// rawReading keeps every field undecoded; values may be numbers or numeric strings.
type rawReading struct {
	DeviceID    json.RawMessage `json:"deviceId"`
	Timestamp   json.RawMessage `json:"timestamp"`
	Temperature json.RawMessage `json:"temperature"`
	Humidity    json.RawMessage `json:"humidity"`
}

// unwrapEnvelope extracts the reading list from one of:
//
//	{"data": [...]}                       direct
//	{"body": "{\"data\": [...]}"}         wrapped
//	{"body": {"data": [...]}}             wrapped-object
//	{}                                    empty
func unwrapEnvelope(payload []byte) ([]rawReading, EnvelopeKind, error) {
	obj, err := decodeObject(payload)
	if err != nil {
		return nil, EnvelopeEmpty, err
	}

	if data, ok := obj["data"]; ok {
		items, err := decodeData(data)
		return items, EnvelopeDirect, err
	}

	body, ok := obj["body"]
	if !ok {
		return nil, EnvelopeEmpty, nil
	}

	switch firstByte(body) {
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, EnvelopeWrapped, fmt.Errorf("%w: %v", ErrUnrecognizedEnvelope, err)
		}
		inner, err := decodeObject([]byte(s))
		if err != nil {
			return nil, EnvelopeWrapped, err
		}
		items, err := decodeData(inner["data"])
		return items, EnvelopeWrapped, err
	case '{':
		inner, err := decodeObject(body)
		if err != nil {
			return nil, EnvelopeWrappedObject, err
		}
		items, err := decodeData(inner["data"])
		return items, EnvelopeWrappedObject, err
	default:
		return nil, EnvelopeEmpty, fmt.Errorf("%w: body is neither a string nor an object", ErrUnrecognizedEnvelope)
	}
}

func decodeObject(b []byte) (map[string]json.RawMessage, error) {
	if firstByte(b) != '{' {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrUnrecognizedEnvelope)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedEnvelope, err)
	}
	return obj, nil
}

// decodeData treats a missing or null data field as an empty list.
func decodeData(b json.RawMessage) ([]rawReading, error) {
	if len(b) == 0 || bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil, nil
	}
	var items []rawReading
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrUnrecognizedEnvelope, err)
	}
	return items, nil
}

func firstByte(b []byte) byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
