package inference

import (
	"bytes"
	"encoding/json"
)

// Shape identifies which response layout the provider returned.
type Shape int

const (
	ShapeList Shape = iota + 1 // [{"generated_text": "..."}]
	ShapeDict                  // {"text": "..."}
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeDict:
		return "dict"
	}
	return "unknown"
}

// Result is the success side of an inference outcome.
type Result struct {
	Text  string
	Shape Shape
}

type generatedItem struct {
	GeneratedText string `json:"generated_text"`
}

type dictBody struct {
	Text  *string `json:"text"`
	Error string  `json:"error"`
}

// parseResult decodes a 200 body once into a Result.
func parseResult(body []byte) (Result, error) {
	b := bytes.TrimSpace(body)
	if len(b) == 0 {
		return Result{}, &Error{Kind: KindMalformedResponse, Message: "empty body"}
	}
	switch b[0] {
	case '[':
		var items []generatedItem
		if err := json.Unmarshal(b, &items); err != nil {
			return Result{}, &Error{Kind: KindMalformedResponse, Message: err.Error(), Err: err}
		}
		if len(items) == 0 {
			return Result{}, &Error{Kind: KindMalformedResponse, Message: "empty result list"}
		}
		return Result{Text: items[0].GeneratedText, Shape: ShapeList}, nil
	case '{':
		var d dictBody
		if err := json.Unmarshal(b, &d); err != nil {
			return Result{}, &Error{Kind: KindMalformedResponse, Message: err.Error(), Err: err}
		}
		if d.Text == nil {
			msg := "object without text field"
			if d.Error != "" {
				msg += ": " + d.Error
			}
			return Result{}, &Error{Kind: KindMalformedResponse, Message: msg}
		}
		return Result{Text: *d.Text, Shape: ShapeDict}, nil
	}
	return Result{}, &Error{Kind: KindMalformedResponse, Message: "unexpected body: " + preview(b)}
}

func preview(b []byte) string {
	const n = 120
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
