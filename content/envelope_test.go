package content

import "testing"

func marshalUnmarshal(t *testing.T, c Content) Content {
	t.Helper()
	data, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return got
}

func TestMarshalUnmarshalRoundTripEachVariant(t *testing.T) {
	cases := []Content{
		TextContent{Text: "hi"},
		MarkdownContent{Text: "# hi"},
		CodeContent{Language: "go", Source: "x := 1"},
		TableContent{Rows: [][]string{{"a", "b"}}},
		MathContent{Notation: "latex", Expression: "x^2"},
		MediaContent{URI: "http://x/y.png", MIME: "image/png", Alt: "alt", Payload: []byte{1, 2, 3}},
		JSONContent{Value: map[string]interface{}{"k": "v"}},
		BinaryContent{MIME: "application/octet-stream", Data: []byte{0xde, 0xad, 0xbe, 0xef}},
		CompositeContent{},
	}
	for _, c := range cases {
		got := marshalUnmarshal(t, c)
		if got.ContentType() != c.ContentType() {
			t.Errorf("%T: round-tripped type = %s, want %s", c, got.ContentType(), c.ContentType())
		}
	}
}

func TestMarshalNilErrors(t *testing.T) {
	if _, err := Marshal(nil); err == nil {
		t.Error("expected error marshaling nil content")
	}
}

func TestUnmarshalUnknownTypeErrors(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"type":"not-a-real-type"}`)); err == nil {
		t.Error("expected error unmarshaling unknown content type")
	}
}

func TestUnmarshalInvalidJSONErrors(t *testing.T) {
	if _, err := Unmarshal([]byte(`{not json`)); err == nil {
		t.Error("expected error unmarshaling invalid json")
	}
}

func TestMediaContentPayloadSurvivesRoundTrip(t *testing.T) {
	c := MediaContent{URI: "http://x", MIME: "image/png", Payload: []byte{9, 8, 7}}
	got := marshalUnmarshal(t, c)
	media, ok := got.(MediaContent)
	if !ok {
		t.Fatalf("got %T, want MediaContent", got)
	}
	if string(media.Payload) != string(c.Payload) {
		t.Errorf("Payload = %v, want %v", media.Payload, c.Payload)
	}
}
