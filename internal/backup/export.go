package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

var (
	// ErrUnknownFormat is returned by Export for anything but json or text.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrNotExport is returned by ParseExport when the input is not JSON.
	ErrNotExport = errors.New("not a phoenix export")
	// ErrNewerExport is returned for an envelope written by a newer version.
	ErrNewerExport = errors.New("export was written by a newer version")
)

// Envelope wraps an exported snapshot.
type Envelope struct {
	Format     string              `json:"format"`
	Version    int                 `json:"version"`
	ExportedAt time.Time           `json:"exportedAt"`
	Data       models.WellnessData `json:"data"`
}

// Export renders data in the requested format.
func Export(data models.WellnessData, format string, now time.Time) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(Envelope{
			Format:     constants.ExportFormatMarker,
			Version:    constants.ExportVersion,
			ExportedAt: now,
			Data:       data,
		}, "", "  ")
	case FormatText:
		return []byte(renderText(data, now)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ParseExport returns the snapshot document inside raw. A bare snapshot
// (no envelope) is returned unchanged; shape validation is left to the
// snapshot decoder.
func ParseExport(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrNotExport
	}
	doc := gjson.ParseBytes(raw)
	if doc.Get("format").String() != constants.ExportFormatMarker {
		return raw, nil
	}
	if v := doc.Get("version").Int(); v > constants.ExportVersion {
		return nil, fmt.Errorf("%w: version %d", ErrNewerExport, v)
	}
	data := doc.Get("data")
	if !data.IsObject() {
		return nil, fmt.Errorf("%w: envelope has no data object", ErrNotExport)
	}
	return []byte(data.Raw), nil
}

func renderText(d models.WellnessData, now time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("Phoenix Rise export, %s", utils.FormatDate(now))
	if d.UserProfile != nil {
		line("Profile: %s (%d)", d.UserProfile.Name, d.UserProfile.Age)
	}
	line("Phoenix points: %d", d.PhoenixPoints)
	line("")

	line("Meals today:")
	for _, m := range d.Meals {
		if utils.IsToday(m.Date, now) {
			line("  [%s] %s %s", check(m.Completed), m.Type, m.Name)
		}
	}

	line("Addictions:")
	for _, a := range d.Addictions {
		line("  %s: %d days clean", a.Name, a.StreakDays(now))
	}

	line("Supplements:")
	for _, s := range d.Supplements {
		line("  [%s] %s %s", check(s.TakenToday), s.Name, s.Dosage)
	}

	line("Goals:")
	for _, g := range d.Goals {
		line("  [%s] %s (%d%%)", check(g.Completed), g.Title, g.Progress)
	}

	line("Routines:")
	for _, r := range d.Routines {
		line("  %s: streak %d, best %d, %d completions", r.Name, r.Streak, r.BestStreak, r.TotalCompletions)
	}

	line("Journal entries: %d", len(d.JournalEntries))
	for _, j := range d.JournalEntries {
		line("  %s %s (%s)", utils.FormatDate(j.Date), j.Title, j.Mood)
	}

	achieved, total := 0, 0
	for _, vb := range d.VisionBoards {
		achieved += vb.AchievedCount()
		total += len(vb.Elements)
	}
	line("Vision: %d of %d elements achieved across %d boards", achieved, total, len(d.VisionBoards))
	line("Visualization: %d sessions, streak %d", len(d.VisualizationSessions), d.VisualizationStreak)
	line("Meditation: %d sessions, %d breaths, streak %d", len(d.Meditation.Sessions), d.Meditation.TotalBreaths, d.Meditation.DaysStreak)
	return b.String()
}

func check(done bool) string {
	if done {
		return "x"
	}
	return " "
}
