package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// UnmarshalJson converts a message payload into T. Payloads that crossed the
// wire arrive as generic maps and take a json round trip; payloads built in
// process already hold a T or *T and are returned as is.
func UnmarshalJson[T any](v any) (T, error) {
	switch p := v.(type) {
	case T:
		return p, nil
	case *T:
		if p != nil {
			return *p, nil
		}
	}
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return *new(T), errors.WithMessage(err, "marshal json")
	}
	var result T
	if err := jsoniter.Unmarshal(data, &result); err != nil {
		return *new(T), errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}
