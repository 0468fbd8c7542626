package mood

import (
	"context"
	"fmt"
	"sort"
)

type Distribution struct {
	MoodType string `json:"mood_type"`
	Count    int64  `json:"count"`
	Emoji    string `json:"emoji"`
	Label    string `json:"label"`
}

type Stats struct {
	TotalEntries     int64          `json:"total_entries"`
	MoodDistribution []Distribution `json:"mood_distribution"`
}

// Stats counts entries per mood type, most frequent first. Ties are ordered
// by mood type so the output is stable across backends.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	counts, err := s.Repo.CountByMood(ctx)
	if err != nil {
		return nil, fmt.Errorf("group entries by mood: %w", err)
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].MoodType < counts[j].MoodType
	})

	dist := make([]Distribution, 0, len(counts))
	for _, c := range counts {
		d := Distribution{
			MoodType: c.MoodType,
			Count:    c.Count,
			Emoji:    UnknownEmoji,
			Label:    TitleCase(c.MoodType),
		}
		if o, ok := LookupOption(c.MoodType); ok {
			d.Emoji = o.Emoji
			d.Label = o.Label
		}
		dist = append(dist, d)
	}

	return &Stats{TotalEntries: total, MoodDistribution: dist}, nil
}
