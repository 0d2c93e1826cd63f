package api

import (
	"strings"
	"time"
)

const (
	defaultGenre  = "AI Music"
	defaultArtist = "Lumina AI"
)

// User mirrors the profile payload returned by the service.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Tokens carries the credential pair issued on login, registration, and
// refresh. RefreshToken may be empty; the service does not always issue one.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Generation describes one generation record in transport-friendly form.
type Generation struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Title        string `json:"title"`
	Prompt       string `json:"prompt,omitempty"`
	Style        string `json:"style,omitempty"`
	Lyrics       string `json:"lyrics,omitempty"`
	OutputURL    string `json:"output_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	IsFavorite   bool   `json:"is_favorite"`
	IsPublic     bool   `json:"is_public"`
	CreatedAt    string `json:"created_at,omitempty"`
	Artist       string `json:"artist,omitempty"`
	Album        string `json:"album,omitempty"`
	Duration     int    `json:"duration,omitempty"`
	Genre        string `json:"genre,omitempty"`
	Mood         string `json:"mood,omitempty"`
	Model        string `json:"model,omitempty"`
	CreatorName  string `json:"creator_name,omitempty"`
}

// Generation status values used by the service.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ResolvedOutputURL returns the playable URL, prefixing the service origin
// when the stored path is relative.
func (g Generation) ResolvedOutputURL(origin string) string {
	return resolveURL(g.OutputURL, origin)
}

// ResolvedThumbnailURL returns the artwork URL, prefixing the service origin
// when the stored path is relative.
func (g Generation) ResolvedThumbnailURL(origin string) string {
	return resolveURL(g.ThumbnailURL, origin)
}

// DisplayGenre returns the first comma-separated token of the style, then
// the genre field, then a fixed default.
func (g Generation) DisplayGenre() string {
	if style := strings.TrimSpace(g.Style); style != "" {
		first, _, _ := strings.Cut(style, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if g.Genre != "" {
		return g.Genre
	}
	return defaultGenre
}

// DisplayArtist returns the artist name, falling back to the brand name.
func (g Generation) DisplayArtist() string {
	if g.Artist != "" {
		return g.Artist
	}
	return defaultArtist
}

// CleanedLyrics returns the lyrics with surrounding whitespace removed.
func (g Generation) CleanedLyrics() string {
	return strings.TrimSpace(g.Lyrics)
}

// FromExplore reports whether the record came from the public explore feed,
// which is the only source that sets a creator name.
func (g Generation) FromExplore() bool {
	return g.CreatorName != ""
}

// InProgress reports whether the service is still working on this record.
func (g Generation) InProgress() bool {
	return g.Status == StatusPending || g.Status == StatusProcessing
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (g Generation) ParsedCreatedAt() time.Time {
	return parseTime(g.CreatedAt)
}

func resolveURL(raw, origin string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(raw, "/")
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateTime} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// GenerateRequest is the body of POST music/generate.
type GenerateRequest struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
	Lyrics string `json:"lyrics"`
	Style  string `json:"style,omitempty"`
	Model  string `json:"model"`
}

// authResponse mirrors the payload of login, register, and refresh.
type authResponse struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}

// profileResponse mirrors GET profile.
type profileResponse struct {
	User User `json:"user"`
}

// generationsResponse mirrors the list payloads of GET generations and
// GET explore.
type generationsResponse struct {
	Generations []Generation `json:"generations"`
}

// generateResponse mirrors POST music/generate. Generation is nil when the
// service accepted the request but produced no record.
type generateResponse struct {
	Message    string      `json:"message"`
	Generation *Generation `json:"generation"`
}

// messageResponse mirrors the single-message payloads of delete and the
// favorite/public toggles.
type messageResponse struct {
	Message string `json:"message"`
}
