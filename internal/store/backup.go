package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// BackupType and BackupVersion identify the full-snapshot backup format.
const (
	BackupType    = "ivt-backup"
	BackupVersion = 2
)

// ErrInvalidBackup is returned when an import payload is not a backup.
var ErrInvalidBackup = errors.New("invalid backup")

// Backup is the full-snapshot envelope: every stored key with its raw value.
type Backup struct {
	Type         string             `json:"type"`
	Version      int                `json:"version"`
	ExportedAt   string             `json:"exportedAt"`
	LocalStorage map[string]*string `json:"localStorage"`
}

// ImportMode reports which backup format an import used.
type ImportMode string

const (
	ImportSnapshot ImportMode = "snapshot"
	ImportLegacy   ImportMode = "legacy"
)

// ImportResult summarizes an import.
type ImportResult struct {
	Mode         ImportMode
	RestoredKeys int
}

// backupSchema accepts both the snapshot envelope and the older flat export.
const backupSchema = `{
	"type": "object",
	"properties": {
		"type": {"type": "string"},
		"version": {"type": "integer"},
		"localStorage": {
			"type": "object",
			"additionalProperties": {"type": ["string", "number", "boolean", "null"]}
		},
		"verbStats": {"type": "object"},
		"datasetConfigs": {"type": "object"},
		"sessionStats": {"type": "object"},
		"settings": {"type": "object"},
		"studyDays": {"type": "array"}
	}
}`

var (
	backupSchemaOnce     sync.Once
	backupSchemaCompiled *jsonschema.Schema
	backupSchemaErr      error
)

func compiledBackupSchema() (*jsonschema.Schema, error) {
	backupSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(backupSchema)))
		if err != nil {
			backupSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://backup.json", doc); err != nil {
			backupSchemaErr = err
			return
		}
		backupSchemaCompiled, backupSchemaErr = c.Compile("schema://backup.json")
	})
	return backupSchemaCompiled, backupSchemaErr
}

// Export writes a snapshot of every key in kv to w as indented JSON.
func Export(ctx context.Context, kv KV, w io.Writer, now time.Time) error {
	keys, err := kv.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}

	snap := make(map[string]*string, len(keys))
	for _, k := range keys {
		v, ok, err := kv.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("read %q: %w", k, err)
		}
		if !ok {
			continue
		}
		snap[k] = &v
	}

	data := Backup{
		Type:         BackupType,
		Version:      BackupVersion,
		ExportedAt:   now.UTC().Format(time.RFC3339Nano),
		LocalStorage: snap,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Import replaces the contents of kv with the backup read from r.
// Both the snapshot format and the older flat export are accepted.
func Import(ctx context.Context, kv KV, r io.Reader) (*ImportResult, error) {
	doc, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	schema, err := compiledBackupSchema()
	if err != nil {
		return nil, fmt.Errorf("compile backup schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidBackup)
	}

	if ls, ok := obj["localStorage"].(map[string]any); ok {
		return importSnapshot(ctx, kv, ls)
	}
	return importLegacy(ctx, kv, obj)
}

func importSnapshot(ctx context.Context, kv KV, ls map[string]any) (*ImportResult, error) {
	if err := kv.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear store: %w", err)
	}

	res := &ImportResult{Mode: ImportSnapshot}
	for k, v := range ls {
		if v == nil {
			continue
		}
		if err := kv.Set(ctx, k, stringify(v)); err != nil {
			return nil, err
		}
		res.RestoredKeys++
	}
	return res, nil
}

// importLegacy restores the keys older builds exported as top-level fields.
func importLegacy(ctx context.Context, kv KV, obj map[string]any) (*ImportResult, error) {
	if err := kv.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear store: %w", err)
	}

	res := &ImportResult{Mode: ImportLegacy}
	set := func(key string, v any) error {
		if v == nil {
			return nil
		}
		if err := kv.Set(ctx, key, stringify(v)); err != nil {
			return err
		}
		res.RestoredKeys++
		return nil
	}

	for _, key := range []string{"theme", "lastDataset", "lastTab", "lastStudyDate"} {
		if s, ok := obj[key].(string); ok {
			if err := set(key, s); err != nil {
				return nil, err
			}
		}
	}
	for _, key := range []string{"datasetConfigs", "verbStats", "sessionStats"} {
		if m, ok := obj[key].(map[string]any); ok {
			if err := set(key, m); err != nil {
				return nil, err
			}
		}
	}
	for _, key := range []string{"xp", "streak", "bestStreak", "dailyWordsStudied"} {
		if v, ok := obj[key]; ok {
			if err := set(key, v); err != nil {
				return nil, err
			}
		}
	}
	if days, ok := obj["studyDays"].([]any); ok {
		if err := set("studyDays", days); err != nil {
			return nil, err
		}
	}
	if settings, ok := obj["settings"].(map[string]any); ok {
		for name, v := range settings {
			if err := set("setting_"+name, v); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// stringify renders a decoded JSON value the way it is kept in storage:
// strings verbatim, scalars in their literal form, containers as JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
