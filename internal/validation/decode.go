package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tidwall/gjson"

	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

var (
	// ErrMalformedJSON is returned when the input is not JSON at all.
	ErrMalformedJSON = errors.New("malformed JSON")
	// ErrInvalidShape is returned when JSON does not match the expected record shape.
	ErrInvalidShape = errors.New("invalid shape")
)

// ShapeError names the record kind that failed validation.
type ShapeError struct {
	Kind string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, ErrInvalidShape)
}

func (e *ShapeError) Unwrap() error { return ErrInvalidShape }

// dateKeys are the object keys whose values are dates wherever they appear.
var dateKeys = map[string]bool{
	"date":               true,
	"createdAt":          true,
	"lastReset":          true,
	"lastTaken":          true,
	"targetDate":         true,
	"completedAt":        true,
	"timestamp":          true,
	"lastCompleted":      true,
	"achievedDate":       true,
	"lastUpdated":        true,
	"lastMeditationDate": true,
}

// integerKeys are the object keys decoded into int fields. The validators
// accept any JSON number, so fractional values are rounded before decoding.
var integerKeys = map[string]bool{
	"progress":            true,
	"calories":            true,
	"points":              true,
	"timeEstimate":        true,
	"streak":              true,
	"bestStreak":          true,
	"totalCompletions":    true,
	"breaths":             true,
	"totalBreaths":        true,
	"daysStreak":          true,
	"duration":            true,
	"age":                 true,
	"fontSize":            true,
	"timesUsed":           true,
	"mood":                true,
	"visualizationStreak": true,
	"phoenixPoints":       true,
}

// maxExactInt bounds rounded values to the range a float64 holds exactly.
const maxExactInt = 1 << 53

// Decode validates raw against check and unmarshals it into T, converting
// every date-like field to a real time value on the way.
func Decode[T any](raw []byte, kind string, check Predicate) (T, error) {
	var out T
	if !gjson.ValidBytes(raw) {
		return out, fmt.Errorf("%s: %w", kind, ErrMalformedJSON)
	}
	if !check(gjson.ParseBytes(raw)) {
		return out, &ShapeError{Kind: kind}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out, fmt.Errorf("%s: %w", kind, ErrMalformedJSON)
	}
	return out, remarshal(normalize(doc), &out)
}

// DecodeGoal decodes a single goal record.
func DecodeGoal(raw []byte) (models.Goal, error) {
	return Decode[models.Goal](raw, "goal", IsGoal)
}

// DecodeRoutine decodes a single routine, including its habit links.
func DecodeRoutine(raw []byte) (models.Routine, error) {
	return Decode[models.Routine](raw, "routine", IsRoutine)
}

// DecodeSnapshot is the aggregate decoder: it validates the whole document,
// re-inflates dates and backfills fields missing from older persisted shapes.
func DecodeSnapshot(raw []byte) (models.WellnessData, error) {
	if !gjson.ValidBytes(raw) {
		return models.WellnessData{}, fmt.Errorf("snapshot: %w", ErrMalformedJSON)
	}
	if !IsWellnessData(gjson.ParseBytes(raw)) {
		return models.WellnessData{}, &ShapeError{Kind: "snapshot"}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.WellnessData{}, fmt.Errorf("snapshot: %w", ErrMalformedJSON)
	}
	normalize(doc)
	migrateLegacySettings(doc)
	backfill(doc)

	var data models.WellnessData
	if err := remarshal(doc, &data); err != nil {
		return models.WellnessData{}, err
	}
	ensureCollections(&data)
	return data, nil
}

func remarshal(doc any, out any) error {
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("re-encode: %w", err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// normalize rewrites every date-keyed value to RFC3339 and every
// integer-keyed number to a whole number, in place.
func normalize(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for key, child := range node {
			if dateKeys[key] {
				if t, ok := toTime(child); ok {
					node[key] = t.Format(time.RFC3339Nano)
					continue
				}
			}
			if integerKeys[key] {
				if n, ok := child.(float64); ok {
					node[key] = toWhole(n)
					continue
				}
			}
			node[key] = normalize(child)
		}
	case []any:
		for i, child := range node {
			node[i] = normalize(child)
		}
	}
	return v
}

func toWhole(n float64) int64 {
	n = math.Round(n)
	switch {
	case math.IsNaN(n):
		return 0
	case n > maxExactInt:
		return maxExactInt
	case n < -maxExactInt:
		return -maxExactInt
	}
	return int64(n)
}

func toTime(v any) (time.Time, bool) {
	switch raw := v.(type) {
	case float64:
		return utils.FromEpochMillis(raw), true
	case string:
		return utils.ParseDateLike(raw)
	default:
		return time.Time{}, false
	}
}

// legacySettingKeys were stored at the top level of the snapshot before voice
// settings moved into their own object.
var legacySettingKeys = []string{
	"elevenLabsApiKey",
	"assemblyAiApiKey",
	"openWeatherApiKey",
	"wakeWordEnabled",
	"soundEffectsEnabled",
	"backgroundMusicEnabled",
	"autoReadResponsesEnabled",
	"voiceModeEnabled",
	"emotionalIntelligenceEnabled",
	"ttsSpeed",
}

func migrateLegacySettings(doc map[string]any) {
	settings, _ := doc["voiceSettings"].(map[string]any)
	if settings == nil {
		settings = map[string]any{}
	}
	for _, key := range legacySettingKeys {
		if v, ok := doc[key]; ok {
			if _, exists := settings[key]; !exists {
				settings[key] = v
			}
			delete(doc, key)
		}
	}
	doc["voiceSettings"] = settings
}

func setDefault(m map[string]any, key string, value any) {
	if v, ok := m[key]; !ok || v == nil {
		m[key] = value
	}
}

// backfill substitutes documented defaults for optional fields that older
// documents do not carry.
func backfill(doc map[string]any) {
	settings := doc["voiceSettings"].(map[string]any)
	setDefault(settings, "wakeWordEnabled", constants.DefaultWakeWordEnabled)
	setDefault(settings, "soundEffectsEnabled", constants.DefaultSoundEffectsEnabled)
	setDefault(settings, "backgroundMusicEnabled", constants.DefaultBackgroundMusicEnabled)
	setDefault(settings, "autoReadResponsesEnabled", constants.DefaultAutoReadResponsesEnabled)
	setDefault(settings, "voiceModeEnabled", constants.DefaultVoiceModeEnabled)
	setDefault(settings, "emotionalIntelligenceEnabled", constants.DefaultEmotionalIntelligenceEnabled)
	setDefault(settings, "ttsSpeed", constants.DefaultTTSSpeed)

	if supplements, ok := doc["supplements"].([]any); ok {
		for _, s := range supplements {
			supp := s.(map[string]any)
			history, _ := supp["weeklyHistory"].([]any)
			supp["weeklyHistory"] = sevenSlots(history)
		}
	}

	if routines, ok := doc["routines"].([]any); ok {
		for _, r := range routines {
			routine := r.(map[string]any)
			setDefault(routine, "bestStreak", routine["streak"])
		}
	}

	setDefault(doc, "meditation", map[string]any{
		"totalBreaths": 0,
		"daysStreak":   0,
		"sessions":     []any{},
	})

	if _, ok := doc["theme"]; !ok || doc["theme"] == nil {
		doc["theme"] = models.DefaultTheme()
	}
}

// sevenSlots pads or truncates a weekly history to exactly seven days.
func sevenSlots(history []any) []any {
	out := make([]any, 7)
	for i := range out {
		out[i] = false
		if i < len(history) {
			out[i] = history[i]
		}
	}
	return out
}

func ensureCollections(d *models.WellnessData) {
	if d.Meals == nil {
		d.Meals = []models.Meal{}
	}
	if d.MealArchive == nil {
		d.MealArchive = []models.Meal{}
	}
	if d.ExtendedMeals == nil {
		d.ExtendedMeals = []models.ExtendedMeal{}
	}
	if d.Addictions == nil {
		d.Addictions = []models.Addiction{}
	}
	if d.Supplements == nil {
		d.Supplements = []models.Supplement{}
	}
	if d.Goals == nil {
		d.Goals = []models.Goal{}
	}
	if d.JournalEntries == nil {
		d.JournalEntries = []models.JournalEntry{}
	}
	if d.ChatMessages == nil {
		d.ChatMessages = []models.ChatMessage{}
	}
	if d.Routines == nil {
		d.Routines = []models.Routine{}
	}
	if d.RoutineCompletions == nil {
		d.RoutineCompletions = []models.RoutineCompletion{}
	}
	if d.VisionBoards == nil {
		d.VisionBoards = []models.VisionBoard{}
	}
	if d.Affirmations == nil {
		d.Affirmations = []models.Affirmation{}
	}
	if d.VisualizationSessions == nil {
		d.VisualizationSessions = []models.VisualizationSession{}
	}
	if d.Meditation.Sessions == nil {
		d.Meditation.Sessions = []models.MeditationSession{}
	}
}
