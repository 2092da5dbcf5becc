package fetch

import (
	"regexp"
	"strings"
)

// Decoration patterns stripped from raw video titles before artist/title
// parsing. Compiled case-insensitively at init.
var titleNoisePatterns = []string{
	`\s*\(Official\s*(Music\s*)?Video\)`,
	`\s*\[Official\s*(Music\s*)?Video\]`,
	`\s*\(Official\s*Audio\)`,
	`\s*\[Official\s*Audio\]`,
	`\s*\(Lyric\s*Video\)`,
	`\s*\[Lyric\s*Video\]`,
	`\s*\(Lyrics\)`,
	`\s*\[Lyrics\]`,
	`\s*\(HD\)`,
	`\s*\[HD\]`,
	`\s*\(HQ\)`,
	`\s*\[HQ\]`,
	`\s*\(4K\)`,
	`\s*\[4K\]`,
	`\s*\|\s*.*$`,
}

// Artist/title separators tried in order
const (
	hyphenSeparator = " - "
	enDashSeparator = " – "
)

// Fallback artist when nothing better is known
const UnknownArtist = "Unknown Artist"

var titleNoiseRegexps = compileNoisePatterns()

func compileNoisePatterns() []*regexp.Regexp {
	regexps := make([]*regexp.Regexp, 0, len(titleNoisePatterns))
	for _, pattern := range titleNoisePatterns {
		regexps = append(regexps, regexp.MustCompile("(?i)"+pattern))
	}
	return regexps
}

// CleanTitle strips common upload decorations ("(Official Video)", "[HD]",
// trailing "| channel stuff") from a raw video title
func CleanTitle(title string) string {
	cleaned := title
	for _, re := range titleNoiseRegexps {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(cleaned)
}

// ParseArtistTitle splits a cleaned title on "Artist - Title" (or the en-dash
// variant), falling back to the channel name as artist
func ParseArtistTitle(rawTitle, channelName string) (artist, title string) {
	cleaned := CleanTitle(rawTitle)

	for _, sep := range []string{hyphenSeparator, enDashSeparator} {
		if pos := strings.Index(cleaned, sep); pos >= 0 {
			artist = strings.TrimSpace(cleaned[:pos])
			title = strings.TrimSpace(cleaned[pos+len(sep):])
			return artist, title
		}
	}

	return channelName, cleaned
}
