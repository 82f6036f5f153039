package zammad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ParseTimestamp parses a timestamp as sent by the API, e.g. "2021-04-09T11:25:45.612Z"
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// decodeObject checks that raw is a JSON object carrying every required key,
// then unmarshals it into dst.
func decodeObject(raw []byte, dst any, required ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return unexpectedResponse("Type of checked data is not object!", "object", jsonKind(raw))
	}

	if err := requireKeys(fields, required...); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return unexpectedResponse(
				fmt.Sprintf("%s attribute has wrong type", typeErr.Field),
				typeErr.Type.String(),
				typeErr.Value,
			)
		}
		return unexpectedResponse(err.Error(), "object", jsonKind(raw))
	}

	return nil
}

// decodeList decodes a JSON array element by element. The first bad element aborts.
func decodeList[T any](raw []byte, fromWire func(json.RawMessage) (*T, error)) ([]*T, error) {
	if kind := jsonKind(raw); kind != "array" {
		return nil, unexpectedResponse("Invalid response (not received array)", "array", kind)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, unexpectedResponse("Invalid response (not received array)", "array", jsonKind(raw))
	}

	out := make([]*T, 0, len(items))
	for _, item := range items {
		v, err := fromWire(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func fetchList[T any](ctx context.Context, api API, path string, fromWire func(json.RawMessage) (*T, error)) ([]*T, error) {
	raw, err := api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, fromWire)
}

func fetchByID[T any](ctx context.Context, api API, prefix string, id any, fromWire func(json.RawMessage) (*T, error)) (*T, error) {
	n, err := AssertInteger(id)
	if err != nil {
		return nil, err
	}

	raw, err := api.Get(ctx, prefix+strconv.Itoa(n))
	if err != nil {
		return nil, err
	}
	return fromWire(raw)
}

func fetchSearch[T any](ctx context.Context, api API, path, query string, fromWire func(json.RawMessage) (*T, error)) ([]*T, error) {
	raw, err := api.GetWithParams(ctx, path, url.Values{SearchQueryParam: {query}})
	if err != nil {
		return nil, err
	}
	return decodeList(raw, fromWire)
}

func create[T any](ctx context.Context, api API, path string, body any, fromWire func(json.RawMessage) (*T, error)) (*T, error) {
	raw, err := api.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return fromWire(raw)
}

// singular builds prefix+id for update and delete calls on an existing entity
func singular(prefix string, id int) (string, error) {
	if id <= 0 {
		return "", invalidRequest("id is required")
	}
	return prefix + strconv.Itoa(id), nil
}

// truthy reports whether an optional string is set and non-empty
func truthy(s *string) bool {
	return s != nil && *s != ""
}

// nullable renders a nullable string for a wire map
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
