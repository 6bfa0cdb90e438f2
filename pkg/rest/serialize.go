package rest

import (
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal writes exactly two fields, error_code then error_message.
func Marshal(s Serializable) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	stream.WriteObjectStart()
	stream.WriteObjectField(CodeField)
	stream.WriteString(s.ErrorCode())
	stream.WriteMore()
	stream.WriteObjectField(MessageField)
	stream.WriteString(s.ErrorMessage())
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// Payload is the decoded wire format, used by clients and tests.
type Payload struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// Decode parses a serialized error body.
func Decode(data []byte) (Payload, error) {
	var p Payload
	err := jsonAPI.Unmarshal(data, &p)
	return p, err
}
