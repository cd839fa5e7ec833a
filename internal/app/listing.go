package app

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/wvsbeta/dumpkeeper/internal/domain"
)

type listingEntry struct {
	Name      string     `json:"name"`
	Size      int64      `json:"size"`
	Created   time.Time  `json:"created"`
	Modified  time.Time  `json:"modified"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type listing struct {
	now     time.Time
	entries []listingEntry
}

func newListing(files []domain.BackupFile, now time.Time, expiresAt func(domain.BackupFile) (time.Time, bool)) *listing {
	l := &listing{now: now, entries: make([]listingEntry, 0, len(files))}
	for _, f := range files {
		entry := listingEntry{
			Name:     f.Name,
			Size:     f.Size,
			Created:  f.Timestamp,
			Modified: f.ModTime,
		}
		if exp, ok := expiresAt(f); ok {
			entry.ExpiresAt = &exp
		}
		l.entries = append(l.entries, entry)
	}
	return l
}

func (l *listing) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l.entries)
}

func (l *listing) WriteTable(w io.Writer) {
	tableWriter := table.NewWriter()
	tableWriter.SetOutputMirror(w)
	tableWriter.Style().Format.Footer = text.FormatDefault
	defer tableWriter.Render()

	tableWriter.AppendHeader(table.Row{"Name", "Size", "Created (UTC)", "Expires in"})

	var total int64
	for _, e := range l.entries {
		total += e.Size
		tableWriter.AppendRow(table.Row{e.Name, formatSize(e.Size), e.Created.Format("2006-01-02 15:04"), l.expiresIn(e)})
	}
	tableWriter.AppendFooter(table.Row{fmt.Sprintf("%d backup(s)", len(l.entries)), formatSize(total), "", ""})
}

func (l *listing) expiresIn(e listingEntry) string {
	if e.ExpiresAt == nil {
		return "-"
	}
	left := e.ExpiresAt.Sub(l.now)
	if left <= 0 {
		return "expired"
	}
	return formatRemaining(left)
}

func formatRemaining(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
}

func formatSize(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
}
