package youtube

import (
	"strings"
	"testing"
)

func TestParseCaptionXML(t *testing.T) {
	payload := `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
		`<text start="0.08" dur="3.2">Hello &amp;amp; welcome</text>` +
		`<text start="3.4" dur="2.1">to the <b>show</b></text>` +
		`<text start="5.5" dur="1.0">   </text>` +
		`</transcript>`

	lines := parseCaptionXML(payload)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}

	if lines[0].Start != 0.08 || lines[0].Dur != 3.2 {
		t.Errorf("line 0 timing = %v/%v, want 0.08/3.2", lines[0].Start, lines[0].Dur)
	}
	if lines[0].Text != "Hello &amp; welcome" {
		t.Errorf("line 0 text = %q (single-pass entity decode expected)", lines[0].Text)
	}
	if lines[1].Text != "to the show" {
		t.Errorf("line 1 text = %q, want nested markup stripped", lines[1].Text)
	}
}

func TestParseCaptionXMLEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"empty payload", "", 0},
		{"no text elements", "<transcript></transcript>", 0},
		{"unterminated tail still parsed", `<text start="1.0" dur="2.0">dangling`, 1},
		{"missing start dropped", `<text dur="2.0">no offset</text>`, 0},
		{"missing dur dropped", `<text start="1.0">no duration</text>`, 0},
		{"valid single", `<text start="1.0" dur="2.0">ok</text>`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCaptionXML(tt.payload); len(got) != tt.want {
				t.Errorf("got %d lines, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseCaptionXMLEntities(t *testing.T) {
	payload := `<text start="0" dur="1">it&#39;s &quot;quoted&quot; &#233;</text>`
	lines := parseCaptionXML(payload)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	want := `it's "quoted" é`
	if lines[0].Text != want {
		t.Errorf("text = %q, want %q", lines[0].Text, want)
	}
}

func TestGenerateVisitorData(t *testing.T) {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	for i := 0; i < 20; i++ {
		v := generateVisitorData()
		if len(v) != 11 {
			t.Fatalf("visitor data length = %d, want 11 (%q)", len(v), v)
		}
		for _, c := range v {
			if !strings.ContainsRune(chars, c) {
				t.Fatalf("visitor data %q contains invalid char %q", v, c)
			}
		}
	}
}

func TestClientIdentities(t *testing.T) {
	if ClientAndroid.NameCode != "3" {
		t.Errorf("ANDROID name code = %q, want 3", ClientAndroid.NameCode)
	}
	if ClientWeb.NameCode != "1" || ClientTV.NameCode != "1" {
		t.Errorf("browser-shaped name codes = %q/%q, want 1/1", ClientWeb.NameCode, ClientTV.NameCode)
	}
	if !strings.HasPrefix(ClientAndroid.userAgent(), "com.google.android.youtube/") {
		t.Errorf("ANDROID user agent = %q", ClientAndroid.userAgent())
	}
	if !strings.Contains(ClientWeb.userAgent(), "Chrome") {
		t.Errorf("WEB user agent = %q", ClientWeb.userAgent())
	}
}
