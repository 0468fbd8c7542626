package mood

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownEmoji stands in for mood types missing from Options.
const UnknownEmoji = "❓"

type Option struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

var moodOptions = []Option{
	{Type: "very_happy", Emoji: "😄", Label: "Very Happy"},
	{Type: "happy", Emoji: "😊", Label: "Happy"},
	{Type: "content", Emoji: "😌", Label: "Content"},
	{Type: "neutral", Emoji: "😐", Label: "Neutral"},
	{Type: "sad", Emoji: "😔", Label: "Sad"},
	{Type: "very_sad", Emoji: "😢", Label: "Very Sad"},
	{Type: "angry", Emoji: "😤", Label: "Angry"},
	{Type: "anxious", Emoji: "😰", Label: "Anxious"},
	{Type: "tired", Emoji: "😴", Label: "Tired"},
	{Type: "excited", Emoji: "🤩", Label: "Excited"},
}

// Options returns a copy of the selectable moods in display order.
func Options() []Option {
	out := make([]Option, len(moodOptions))
	copy(out, moodOptions)
	return out
}

// LookupOption finds the static option for a mood type.
func LookupOption(moodType string) (Option, bool) {
	for _, o := range moodOptions {
		if o.Type == moodType {
			return o, true
		}
	}
	return Option{}, false
}

// Humanize renders a mood type for display: "very_happy" -> "Very Happy".
func Humanize(moodType string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(moodType, "_", " "))
}

// TitleCase capitalizes each underscore-separated word and keeps the
// underscores: "very_bored" -> "Very_Bored".
func TitleCase(moodType string) string {
	title := cases.Title(language.Und)
	words := strings.Split(moodType, "_")
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, "_")
}
