// Package validation checks decoded JSON against the shape of each domain
// record before it is trusted as application state.
//
// Predicates never panic and never return errors: a value either has the
// expected shape or it does not.
package validation

import (
	"math"

	"github.com/tidwall/gjson"

	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// Predicate reports whether a JSON value has a particular shape.
type Predicate func(gjson.Result) bool

func isObject(v gjson.Result) bool { return v.IsObject() }
func isString(v gjson.Result) bool { return v.Type == gjson.String }
func isBool(v gjson.Result) bool   { return v.IsBool() }

func isNumber(v gjson.Result) bool {
	return v.Type == gjson.Number && !math.IsNaN(v.Float()) && !math.IsInf(v.Float(), 0)
}

// absent treats a missing key and an explicit null the same way.
func absent(v gjson.Result) bool {
	return !v.Exists() || v.Type == gjson.Null
}

func optional(p Predicate) Predicate {
	return func(v gjson.Result) bool {
		return absent(v) || p(v)
	}
}

func arrayOf(p Predicate) Predicate {
	return func(v gjson.Result) bool {
		if !v.IsArray() {
			return false
		}
		ok := true
		v.ForEach(func(_, el gjson.Result) bool {
			ok = p(el)
			return ok
		})
		return ok
	}
}

// fields checks each named field of an object against its predicate.
type fields map[string]Predicate

func (f fields) match(v gjson.Result) bool {
	if !isObject(v) {
		return false
	}
	for key, p := range f {
		if !p(v.Get(key)) {
			return false
		}
	}
	return true
}

// IsDateLike accepts anything that parses to a valid instant: epoch
// milliseconds or an ISO-ish date string. The exact format is not enforced.
func IsDateLike(v gjson.Result) bool {
	switch v.Type {
	case gjson.Number:
		return isNumber(v)
	case gjson.String:
		_, ok := utils.ParseDateLike(v.Str)
		return ok
	default:
		return false
	}
}

var (
	optString = optional(isString)
	optNumber = optional(isNumber)
	optBool   = optional(isBool)
	optDate   = optional(IsDateLike)
	optObject = optional(isObject)
)

var mealShape = fields{
	"id":        isString,
	"type":      isString,
	"name":      isString,
	"calories":  isNumber,
	"completed": isBool,
	"date":      IsDateLike,
}

func IsMeal(v gjson.Result) bool { return mealShape.match(v) }

var macrosShape = fields{
	"protein": isNumber,
	"carbs":   isNumber,
	"fat":     isNumber,
}

var extendedMealShape = fields{
	"id":          isString,
	"type":        isString,
	"name":        isString,
	"calories":    isNumber,
	"macros":      macrosShape.match,
	"ingredients": arrayOf(isString),
	"completed":   isBool,
	"date":        IsDateLike,
}

func IsExtendedMeal(v gjson.Result) bool { return extendedMealShape.match(v) }

var addictionShape = fields{
	"id":        isString,
	"name":      isString,
	"lastReset": IsDateLike,
	"createdAt": IsDateLike,
}

func IsAddiction(v gjson.Result) bool { return addictionShape.match(v) }

var supplementShape = fields{
	"id":            isString,
	"name":          isString,
	"dosage":        isString,
	"time":          optString,
	"takenToday":    isBool,
	"lastTaken":     optDate,
	"weeklyHistory": optional(arrayOf(isBool)),
}

func IsSupplement(v gjson.Result) bool { return supplementShape.match(v) }

var milestoneShape = fields{
	"id":        isString,
	"title":     isString,
	"completed": isBool,
}

var goalShape = fields{
	"id":                isString,
	"title":             isString,
	"description":       optString,
	"category":          isString,
	"targetDate":        optDate,
	"measurementMethod": optString,
	"priority":          optString,
	"milestones":        optional(arrayOf(milestoneShape.match)),
	"progress":          isNumber,
	"completed":         isBool,
	"completedAt":       optDate,
	"createdAt":         IsDateLike,
}

func IsGoal(v gjson.Result) bool { return goalShape.match(v) }

var journalEntryShape = fields{
	"id":            isString,
	"title":         optString,
	"mood":          isString,
	"gratitude":     optString,
	"challenges":    optString,
	"wins":          optString,
	"tomorrowFocus": optString,
	"content":       optString,
	"date":          IsDateLike,
}

func IsJournalEntry(v gjson.Result) bool { return journalEntryShape.match(v) }

var quickActionShape = fields{
	"label":  isString,
	"action": optString,
}

var chatMessageShape = fields{
	"id":           isString,
	"text":         isString,
	"isUser":       isBool,
	"timestamp":    IsDateLike,
	"quickActions": optional(arrayOf(quickActionShape.match)),
	"emotion":      optString,
	"emoji":        optString,
	"color":        optString,
}

func IsChatMessage(v gjson.Result) bool { return chatMessageShape.match(v) }

var habitLinkShape = fields{
	"id":           isString,
	"type":         isString,
	"name":         isString,
	"points":       isNumber,
	"completed":    optBool,
	"timeEstimate": optNumber,
	"isKeystone":   optBool,
}

func IsHabitLink(v gjson.Result) bool { return habitLinkShape.match(v) }

var routineShape = fields{
	"id":               isString,
	"name":             isString,
	"type":             optString,
	"habitLinks":       arrayOf(IsHabitLink),
	"isActive":         isBool,
	"streak":           isNumber,
	"bestStreak":       optNumber,
	"lastCompleted":    optDate,
	"completionRate":   optNumber,
	"totalCompletions": optNumber,
	"createdAt":        optDate,
}

func IsRoutine(v gjson.Result) bool { return routineShape.match(v) }

var routineCompletionShape = fields{
	"id":                   isString,
	"routineId":            isString,
	"date":                 IsDateLike,
	"completedLinks":       arrayOf(isString),
	"partialCompletion":    optBool,
	"completionPercentage": isNumber,
}

func IsRoutineCompletion(v gjson.Result) bool { return routineCompletionShape.match(v) }

var visionElementShape = fields{
	"id":           isString,
	"type":         isString,
	"title":        isString,
	"content":      optString,
	"category":     optString,
	"targetDate":   optDate,
	"achieved":     isBool,
	"achievedDate": optDate,
	"position":     optObject,
	"size":         optObject,
	"style":        optObject,
}

func IsVisionElement(v gjson.Result) bool { return visionElementShape.match(v) }

var visionBoardShape = fields{
	"id":              isString,
	"name":            isString,
	"description":     optString,
	"elements":        arrayOf(IsVisionElement),
	"backgroundColor": optString,
	"createdAt":       IsDateLike,
}

func IsVisionBoard(v gjson.Result) bool { return visionBoardShape.match(v) }

var affirmationShape = fields{
	"id":        isString,
	"text":      isString,
	"category":  optString,
	"isCustom":  optBool,
	"timesUsed": isNumber,
	"createdAt": IsDateLike,
}

func IsAffirmation(v gjson.Result) bool { return affirmationShape.match(v) }

var visualizationSessionShape = fields{
	"id":         isString,
	"duration":   isNumber,
	"focusGoals": optional(arrayOf(isString)),
	"notes":      optString,
	"mood":       isNumber,
	"date":       IsDateLike,
}

func IsVisualizationSession(v gjson.Result) bool { return visualizationSessionShape.match(v) }

var dreamLifeScriptShape = fields{
	"health":         optString,
	"relationships":  optString,
	"career":         optString,
	"finances":       optString,
	"personalGrowth": optString,
	"lifestyle":      optString,
	"lastUpdated":    IsDateLike,
}

func IsDreamLifeScript(v gjson.Result) bool { return dreamLifeScriptShape.match(v) }

var meditationSessionShape = fields{
	"id":       isString,
	"breaths":  isNumber,
	"duration": optNumber,
	"date":     IsDateLike,
}

var meditationShape = fields{
	"totalBreaths":       isNumber,
	"daysStreak":         isNumber,
	"lastMeditationDate": optDate,
	"sessions":           arrayOf(meditationSessionShape.match),
	"todayCompleted":     optBool,
}

func IsMeditationData(v gjson.Result) bool { return meditationShape.match(v) }

var userProfileShape = fields{
	"name":       isString,
	"age":        isNumber,
	"motivation": optString,
}

func IsUserProfile(v gjson.Result) bool { return userProfileShape.match(v) }

var themeShape = fields{
	"name":       isString,
	"primary":    isString,
	"secondary":  isString,
	"accent":     isString,
	"background": isString,
	"text":       isString,
}

func IsTheme(v gjson.Result) bool { return themeShape.match(v) }

var voiceSettingsShape = fields{
	"elevenLabsApiKey":             optString,
	"assemblyAiApiKey":             optString,
	"openWeatherApiKey":            optString,
	"wakeWordEnabled":              optBool,
	"soundEffectsEnabled":          optBool,
	"backgroundMusicEnabled":       optBool,
	"autoReadResponsesEnabled":     optBool,
	"voiceModeEnabled":             optBool,
	"emotionalIntelligenceEnabled": optBool,
	"ttsSpeed":                     optNumber,
}

func IsVoiceSettings(v gjson.Result) bool { return voiceSettingsShape.match(v) }

// wellnessShape composes every entity predicate. Collections introduced after
// the first release are optional so older documents still load.
var wellnessShape = fields{
	"meals":          arrayOf(IsMeal),
	"supplements":    arrayOf(IsSupplement),
	"addictions":     arrayOf(IsAddiction),
	"goals":          arrayOf(IsGoal),
	"journalEntries": arrayOf(IsJournalEntry),
	"chatMessages":   arrayOf(IsChatMessage),
	"phoenixPoints":  isNumber,
	"lastUpdated":    IsDateLike,

	"mealArchive":           optional(arrayOf(IsMeal)),
	"extendedMeals":         optional(arrayOf(IsExtendedMeal)),
	"routines":              optional(arrayOf(IsRoutine)),
	"routineCompletions":    optional(arrayOf(IsRoutineCompletion)),
	"visionBoards":          optional(arrayOf(IsVisionBoard)),
	"affirmations":          optional(arrayOf(IsAffirmation)),
	"visualizationSessions": optional(arrayOf(IsVisualizationSession)),
	"visualizationStreak":   optNumber,
	"dreamLifeScript":       optional(IsDreamLifeScript),
	"meditation":            optional(IsMeditationData),
	"userProfile":           optional(IsUserProfile),
	"theme":                 optional(IsTheme),
	"voiceSettings":         optional(IsVoiceSettings),
}

// IsWellnessData validates the whole aggregate snapshot.
func IsWellnessData(v gjson.Result) bool { return wellnessShape.match(v) }
