package captions

import (
	"sort"

	"ytdl/internal/language"
)

// Track is one caption rendition listed by yt-dlp.
type Track struct {
	Ext  string `json:"ext"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
}

// Info holds the caption-related fields of a yt-dlp metadata document.
type Info struct {
	Subtitles         map[string][]Track `json:"subtitles"`
	AutomaticCaptions map[string][]Track `json:"automatic_captions"`
	Language          string             `json:"language"`
}

// Choice is the selected caption track language.
type Choice struct {
	Language  string
	Automatic bool
}

// Choose picks the caption language to download. For each preferred
// language it tries, in order: a manual track with that exact key, a manual
// regional variant, an automatic exact track, an automatic variant. When no
// preference matches, the resource's own language is tried the same way.
// ok is false when nothing matches.
func Choose(info Info, preferred []string) (Choice, bool) {
	candidates := append([]string(nil), preferred...)
	if info.Language != "" {
		candidates = append(candidates, info.Language)
	}
	manual := sortedKeys(info.Subtitles)
	auto := sortedKeys(info.AutomaticCaptions)

	for _, want := range candidates {
		if want == "" {
			continue
		}
		if key, ok := match(manual, want); ok {
			return Choice{Language: key}, true
		}
		if key, ok := match(auto, want); ok {
			return Choice{Language: key, Automatic: true}, true
		}
	}
	return Choice{}, false
}

// Listing is one row of the caption inventory.
type Listing struct {
	Language  string
	Name      string
	Formats   []string
	Automatic bool
}

// List returns every available caption language, manual tracks first.
func List(info Info) []Listing {
	var out []Listing
	add := func(tracks map[string][]Track, automatic bool) {
		for _, key := range sortedKeys(tracks) {
			formats := make([]string, 0, len(tracks[key]))
			for _, t := range tracks[key] {
				if t.Ext != "" {
					formats = append(formats, t.Ext)
				}
			}
			out = append(out, Listing{
				Language:  key,
				Name:      language.DisplayName(key),
				Formats:   formats,
				Automatic: automatic,
			})
		}
	}
	add(info.Subtitles, false)
	add(info.AutomaticCaptions, true)
	return out
}

// match returns the exact key for want, else the first regional variant.
func match(keys []string, want string) (string, bool) {
	for _, key := range keys {
		if language.Equal(key, want) {
			return key, true
		}
	}
	for _, key := range keys {
		if language.SameBase(key, want) {
			return key, true
		}
	}
	return "", false
}

func sortedKeys(tracks map[string][]Track) []string {
	keys := make([]string, 0, len(tracks))
	for key, list := range tracks {
		if len(list) == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
