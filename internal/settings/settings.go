// Package settings reads and writes the user preferences stored as
// setting_* keys.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/verbiz/internal/store"
)

// KeyPrefix is prepended to every setting name to form its storage key.
const KeyPrefix = "setting_"

// Animation speeds.
const (
	SpeedSlow   = "slow"
	SpeedNormal = "normal"
	SpeedFast   = "fast"
)

// Settings holds every user preference.
type Settings struct {
	AutoAdvance  bool
	AutoCheck    bool
	LiveCheck    bool
	ReduceMotion bool
	AnimSpeed    string
	SimpleMode   bool
	ShowHints    bool
	Haptics      bool
	SoundEffects bool
	Confetti     bool
	DailyGoal    int
	AutoSpeak    bool
	SpeechRate   float64
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{
		AutoAdvance:  true,
		AutoCheck:    true,
		LiveCheck:    true,
		AnimSpeed:    SpeedNormal,
		ShowHints:    true,
		Haptics:      true,
		SoundEffects: true,
		Confetti:     true,
		DailyGoal:    10,
		SpeechRate:   1.0,
	}
}

// AnimMultiplier scales animation and auto-advance delays.
func (s Settings) AnimMultiplier() float64 {
	switch s.AnimSpeed {
	case SpeedSlow:
		return 1.5
	case SpeedFast:
		return 0.5
	default:
		return 1
	}
}

type kind int

const (
	kindBool kind = iota
	kindInt
	kindFloat
	kindString
)

type field struct {
	kind kind
	ptr  func(*Settings) any
}

var fields = map[string]field{
	"autoAdvance":  {kindBool, func(s *Settings) any { return &s.AutoAdvance }},
	"autoCheck":    {kindBool, func(s *Settings) any { return &s.AutoCheck }},
	"liveCheck":    {kindBool, func(s *Settings) any { return &s.LiveCheck }},
	"reduceMotion": {kindBool, func(s *Settings) any { return &s.ReduceMotion }},
	"animSpeed":    {kindString, func(s *Settings) any { return &s.AnimSpeed }},
	"simpleMode":   {kindBool, func(s *Settings) any { return &s.SimpleMode }},
	"showHints":    {kindBool, func(s *Settings) any { return &s.ShowHints }},
	"haptics":      {kindBool, func(s *Settings) any { return &s.Haptics }},
	"soundEffects": {kindBool, func(s *Settings) any { return &s.SoundEffects }},
	"confetti":     {kindBool, func(s *Settings) any { return &s.Confetti }},
	"dailyGoal":    {kindInt, func(s *Settings) any { return &s.DailyGoal }},
	"autoSpeak":    {kindBool, func(s *Settings) any { return &s.AutoSpeak }},
	"speechRate":   {kindFloat, func(s *Settings) any { return &s.SpeechRate }},
}

// Names returns every setting name in sorted order.
func Names() []string {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load reads every setting from kv. Missing or unparsable values keep their
// default.
func Load(ctx context.Context, kv store.KV) (Settings, error) {
	s := Defaults()
	for name, f := range fields {
		raw, ok, err := kv.Get(ctx, KeyPrefix+name)
		if err != nil {
			return s, fmt.Errorf("read setting %s: %w", name, err)
		}
		if !ok {
			continue
		}
		f.decode(&s, raw)
	}
	return s, nil
}

// decode applies raw to the field, leaving the current value on failure.
// Zero numbers fall back to the default like the stored-preference readers
// always have.
func (f field) decode(s *Settings, raw string) {
	switch p := f.ptr(s).(type) {
	case *bool:
		*p = parseBool(raw, *p)
	case *int:
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n != 0 {
			*p = n
		}
	case *float64:
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && n != 0 {
			*p = n
		}
	case *string:
		if raw != "" {
			*p = raw
		}
	}
}

// parseBool accepts JSON-encoded values as well as the legacy bare
// "true"/"false" strings.
func parseBool(raw string, fallback bool) bool {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw == "true"
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return fallback
	default:
		return true
	}
}

// Update validates value for the named setting and stores it.
func Update(ctx context.Context, kv store.KV, name, value string) error {
	f, ok := fields[name]
	if !ok {
		return fmt.Errorf("unknown setting %q", name)
	}

	var stored string
	switch f.kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("setting %s: %q is not a boolean", name, value)
		}
		stored = strconv.FormatBool(b)
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("setting %s: %q is not a positive integer", name, value)
		}
		stored = strconv.Itoa(n)
	case kindFloat:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("setting %s: %q is not a positive number", name, value)
		}
		stored = strconv.FormatFloat(n, 'f', -1, 64)
	case kindString:
		if name == "animSpeed" && value != SpeedSlow && value != SpeedNormal && value != SpeedFast {
			return fmt.Errorf("setting %s: want slow, normal or fast", name)
		}
		stored = value
	}

	if err := kv.Set(ctx, KeyPrefix+name, stored); err != nil {
		return fmt.Errorf("store setting %s: %w", name, err)
	}
	return nil
}

// Value renders the named setting of s as it would be stored.
func (s Settings) Value(name string) (string, bool) {
	f, ok := fields[name]
	if !ok {
		return "", false
	}
	switch p := f.ptr(&s).(type) {
	case *bool:
		return strconv.FormatBool(*p), true
	case *int:
		return strconv.Itoa(*p), true
	case *float64:
		return strconv.FormatFloat(*p, 'f', -1, 64), true
	case *string:
		return *p, true
	}
	return "", false
}
