// Package export renders the conversation, timeline and profile into
// shareable artifacts: a plain-text transcript and a paginated document.
// Exporting never mutates the entities it reads.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/comigor/casehelper-go/internal/history"
	"github.com/comigor/casehelper-go/internal/profile"
	"github.com/comigor/casehelper-go/internal/timeline"
)

// Title heads the paginated document.
const Title = "My Dependency Case Helper - Case Summary"

// Snapshot is a read-only copy of the three entities taken at export time.
type Snapshot struct {
	Turns   []history.Turn
	Events  []timeline.Event
	Profile profile.Record
}

// Sources are the live entities an export reads from.
type Sources struct {
	Log      *history.Log
	Timeline *timeline.Tracker
	Profile  *profile.Profile
}

// Snapshot copies the current state of every non-nil source.
func (s Sources) Snapshot() Snapshot {
	var snap Snapshot
	if s.Log != nil {
		snap.Turns = s.Log.Snapshot()
	}
	if s.Timeline != nil {
		snap.Events = s.Timeline.Snapshot()
	}
	if s.Profile != nil {
		snap.Profile = s.Profile.Snapshot()
	}
	return snap
}

// RoleLabel is the speaker label used in both artifacts.
func RoleLabel(r history.Role) string {
	if r == history.RoleUser {
		return "You"
	}
	return "Assistant"
}

// Text renders turns as "<Label>: <text>" blocks separated by a blank line.
// Turn text is not escaped, so text that itself starts with "You:" or
// "Assistant:" cannot be told apart from a turn boundary when parsed back.
func Text(turns []history.Turn) string {
	blocks := make([]string, len(turns))
	for i, t := range turns {
		blocks[i] = RoleLabel(t.Role) + ": " + t.Text
	}
	return strings.Join(blocks, "\n\n")
}

// WriteText writes the text artifact for turns to w.
func WriteText(w io.Writer, turns []history.Turn) error {
	_, err := io.WriteString(w, Text(turns))
	return err
}

// WriteTextFile writes the text artifact to path.
func WriteTextFile(path string, turns []history.Turn) error {
	if err := os.WriteFile(path, []byte(Text(turns)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DocumentLines returns the unpaginated document content in order: title,
// profile fields, the timeline when present, then the chat.
func (l Layout) DocumentLines(s Snapshot) []string {
	lines := []string{
		Title,
		"Name: " + s.Profile.Name,
		"Case Number: " + s.Profile.CaseNumber,
		"Attorney: " + s.Profile.AttorneyName,
	}
	if len(s.Events) > 0 {
		lines = append(lines, "Timeline:")
		for _, e := range s.Events {
			lines = append(lines, "- "+e.Date+": "+e.Description)
		}
	}
	lines = append(lines, "Chat:")
	for _, t := range s.Turns {
		lines = append(lines, l.turnLines(t)...)
	}
	return lines
}

// turnLines wraps a turn and labels its first wrapped line only.
func (l Layout) turnLines(t history.Turn) []string {
	wrapped := Wrap(t.Text, l.Width)
	wrapped[0] = RoleLabel(t.Role) + ": " + wrapped[0]
	return wrapped
}

// Document lays out the snapshot into pages.
func (l Layout) Document(s Snapshot) []Page {
	return l.Paginate(l.DocumentLines(s))
}
