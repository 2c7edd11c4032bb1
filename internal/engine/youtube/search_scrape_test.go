package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url extra params", "https://www.youtube.com/watch?list=PL1&v=dQw4w9WgXcQ&t=10s", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url with t", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"unrelated url", "https://example.com/watch?v=nope", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.in); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple object", `{"a":1};more js`, `{"a":1}`},
		{"nested", `{"a":{"b":{"c":2}}}tail`, `{"a":{"b":{"c":2}}}`},
		{"braces in strings", `{"a":"}{","b":1}`, `{"a":"}{","b":1}`},
		{"escaped quote in string", `{"a":"say \"}\"","b":2}`, `{"a":"say \"}\"","b":2}`},
		{"not an object", `[1,2,3]`, ""},
		{"unterminated", `{"a":1`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVideosFromInitialData(t *testing.T) {
	data := []byte(`{
		"contents": {
			"sectionList": [
				{"videoRenderer": {
					"videoId": "vid00000001",
					"title": {"runs": [{"text": "First Video"}]},
					"ownerText": {"runs": [{"text": "Channel One"}]},
					"descriptionSnippet": {"runs": [{"text": "part one "}, {"text": "part two"}]}
				}},
				{"adSlotRenderer": {"something": "else"}},
				{"videoRenderer": {
					"videoId": "vid00000002",
					"title": {"runs": [{"text": "Second Video"}]},
					"ownerText": {"runs": [{"text": "Channel Two"}]}
				}},
				{"videoRenderer": {
					"videoId": "vid00000003",
					"title": {"runs": [{"text": "Third Video"}]}
				}}
			]
		}
	}`)

	items := videosFromInitialData(data, 2)
	if len(items) != 2 {
		t.Fatalf("expected limit of 2 items, got %d: %+v", len(items), items)
	}

	first := items[0]
	if first.ID != "vid00000001" || first.Title != "First Video" || first.Channel != "Channel One" {
		t.Errorf("first item = %+v", first)
	}
	if first.Snippet != "part one part two" {
		t.Errorf("snippet = %q, want joined runs", first.Snippet)
	}
	if first.URL != "https://www.youtube.com/watch?v=vid00000001" {
		t.Errorf("url = %q", first.URL)
	}
}

func TestVideosFromInitialDataEmpty(t *testing.T) {
	if items := videosFromInitialData([]byte(`{"contents":{}}`), 5); len(items) != 0 {
		t.Errorf("expected no items, got %+v", items)
	}
	if items := videosFromInitialData([]byte(`not json`), 5); len(items) != 0 {
		t.Errorf("expected no items for invalid JSON, got %+v", items)
	}
}
