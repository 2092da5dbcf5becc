package fetch

import "testing"

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Band - Song (Official Music Video)", "Band - Song"},
		{"Band - Song [Official Video]", "Band - Song"},
		{"Band - Song (Official Audio)", "Band - Song"},
		{"Band - Song (Lyric Video)", "Band - Song"},
		{"Band - Song [Lyrics]", "Band - Song"},
		{"Band - Song (HD)", "Band - Song"},
		{"Band - Song [4K]", "Band - Song"},
		{"Band - Song | Best Channel Ever", "Band - Song"},
		{"band - song (official music video)", "band - song"},
		{"Plain Title", "Plain Title"},
	}

	for _, test := range tests {
		result := CleanTitle(test.input)
		if result != test.expected {
			t.Errorf("CleanTitle(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestParseArtistTitle(t *testing.T) {
	tests := []struct {
		name           string
		rawTitle       string
		channel        string
		expectedArtist string
		expectedTitle  string
	}{
		{
			name:           "hyphen separator",
			rawTitle:       "Daft Punk - Harder Better Faster Stronger",
			channel:        "SomeChannel",
			expectedArtist: "Daft Punk",
			expectedTitle:  "Harder Better Faster Stronger",
		},
		{
			name:           "en-dash separator",
			rawTitle:       "Daft Punk – Around The World",
			channel:        "SomeChannel",
			expectedArtist: "Daft Punk",
			expectedTitle:  "Around The World",
		},
		{
			name:           "decorations removed before split",
			rawTitle:       "Band - Song (Official Video)",
			channel:        "SomeChannel",
			expectedArtist: "Band",
			expectedTitle:  "Song",
		},
		{
			name:           "channel fallback",
			rawTitle:       "Just A Title",
			channel:        "Uploader Name",
			expectedArtist: "Uploader Name",
			expectedTitle:  "Just A Title",
		},
	}

	for _, test := range tests {
		artist, title := ParseArtistTitle(test.rawTitle, test.channel)
		if artist != test.expectedArtist {
			t.Errorf("%s: artist = %q, expected %q", test.name, artist, test.expectedArtist)
		}
		if title != test.expectedTitle {
			t.Errorf("%s: title = %q, expected %q", test.name, title, test.expectedTitle)
		}
	}
}
