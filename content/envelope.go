package content

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// envelope is the wire shape for a Content value: a "type" discriminator
// plus variant-specific fields flattened alongside it, matching §6's
// block JSON shape (`{"type":"text","text":"..."}`).
type envelope struct {
	Type Type `json:"type"`

	Text       string          `json:"text,omitempty"`
	Language   string          `json:"language,omitempty"`
	Source     string          `json:"source,omitempty"`
	Rows       [][]string      `json:"rows,omitempty"`
	Notation   string          `json:"notation,omitempty"`
	Expression string          `json:"expression,omitempty"`
	URI        string          `json:"uri,omitempty"`
	MIME       string          `json:"mime_type,omitempty"`
	Alt        string          `json:"alt,omitempty"`
	Payload    string          `json:"payload,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
	Data       string          `json:"data,omitempty"`
}

// Marshal encodes a Content value into its wire envelope.
func Marshal(c Content) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("content: cannot marshal nil content")
	}
	e := envelope{Type: c.ContentType()}
	switch v := c.(type) {
	case TextContent:
		e.Text = v.Text
	case MarkdownContent:
		e.Text = v.Text
	case CodeContent:
		e.Language, e.Source = v.Language, v.Source
	case TableContent:
		e.Rows = v.Rows
	case MathContent:
		e.Notation, e.Expression = v.Notation, v.Expression
	case MediaContent:
		e.URI, e.MIME, e.Alt = v.URI, v.MIME, v.Alt
		if len(v.Payload) > 0 {
			e.Payload = base64.StdEncoding.EncodeToString(v.Payload)
		}
	case JSONContent:
		raw, err := json.Marshal(v.Value)
		if err != nil {
			return nil, fmt.Errorf("content: marshal json value: %w", err)
		}
		e.Value = raw
	case BinaryContent:
		e.MIME = v.MIME
		e.Data = base64.StdEncoding.EncodeToString(v.Data)
	case CompositeContent:
		// no fields
	default:
		return nil, fmt.Errorf("content: unknown variant %T", c)
	}
	return json.Marshal(e)
}

// Unmarshal decodes a wire envelope into the appropriate Content
// variant based on its "type" discriminator.
func Unmarshal(data []byte) (Content, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("content: decode envelope: %w", err)
	}
	switch e.Type {
	case Text:
		return TextContent{Text: e.Text}, nil
	case Markdown:
		return MarkdownContent{Text: e.Text}, nil
	case Code:
		return CodeContent{Language: e.Language, Source: e.Source}, nil
	case Table:
		return TableContent{Rows: e.Rows}, nil
	case Math:
		return MathContent{Notation: e.Notation, Expression: e.Expression}, nil
	case Media:
		var payload []byte
		if e.Payload != "" {
			b, err := base64.StdEncoding.DecodeString(e.Payload)
			if err != nil {
				return nil, fmt.Errorf("content: decode media payload: %w", err)
			}
			payload = b
		}
		return MediaContent{URI: e.URI, MIME: e.MIME, Alt: e.Alt, Payload: payload}, nil
	case JSON:
		var v interface{}
		if len(e.Value) > 0 {
			if err := json.Unmarshal(e.Value, &v); err != nil {
				return nil, fmt.Errorf("content: decode json value: %w", err)
			}
		}
		return JSONContent{Value: v}, nil
	case Binary:
		b, err := base64.StdEncoding.DecodeString(e.Data)
		if err != nil {
			return nil, fmt.Errorf("content: decode binary data: %w", err)
		}
		return BinaryContent{MIME: e.MIME, Data: b}, nil
	case Composite:
		return CompositeContent{}, nil
	default:
		return nil, fmt.Errorf("content: unknown content type %q", e.Type)
	}
}
