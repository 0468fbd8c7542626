package mood

import (
	"context"
	"encoding/csv"
	"io"
	"time"
)

// ExportFilename is the attachment name offered to browsers.
const ExportFilename = "mood_tracker_export.csv"

var csvHeader = []string{"Date", "Mood", "Emoji", "Notes", "Timestamp"}

// ExportCSV streams every entry, newest date first, as CSV rows to w.
// An empty store produces only the header row.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	err := s.Repo.Walk(ctx, func(e *Entry) error {
		return cw.Write([]string{
			e.Date,
			Humanize(e.MoodType),
			e.Emoji,
			e.Notes,
			e.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	})
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
