// Package pagination implements opaque continuation tokens for list endpoints.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const offsetPrefix = "off:"

// DefaultLimit and MaxLimit bound the page size of list endpoints.
const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// EncodeOffsetToken creates a base64 encoded token for the given offset.
func EncodeOffsetToken(offset int) string {
	return base64.URLEncoding.EncodeToString([]byte(offsetPrefix + strconv.Itoa(offset)))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken. An empty
// token decodes to offset zero.
func DecodeOffsetToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	decoded, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), offsetPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid pagination token format (prefix)")
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}

// ClampLimit applies DefaultLimit to non-positive limits and caps at MaxLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Page slices items starting at the offset carried by token. It returns the
// page and the token for the next page, which is nil on the last page.
func Page[T any](items []T, limit int, token string) ([]T, *string, error) {
	offset, err := DecodeOffsetToken(token)
	if err != nil {
		return nil, nil, err
	}
	limit = ClampLimit(limit)
	if offset >= len(items) {
		return []T{}, nil, nil
	}
	end := min(offset+limit, len(items))
	page := items[offset:end]
	if end == len(items) {
		return page, nil, nil
	}
	next := EncodeOffsetToken(end)
	return page, &next, nil
}
