package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// KV is a flat key-value string store. Keys and values are opaque strings;
// structured values are stored as JSON text.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// GetJSON decodes the JSON value stored under key into v.
// A missing key reports ok=false with no error.
func GetJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Set(ctx, key, string(b))
}

// GetInt parses the decimal integer stored under key, returning fallback when
// the key is absent or unparsable.
func GetInt(ctx context.Context, kv KV, key string, fallback int) int {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// SetInt stores n as a decimal string.
func SetInt(ctx context.Context, kv KV, key string, n int) error {
	return kv.Set(ctx, key, strconv.Itoa(n))
}

// GetString returns the raw value under key or fallback when absent.
func GetString(ctx context.Context, kv KV, key, fallback string) string {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return fallback
	}
	return raw
}
