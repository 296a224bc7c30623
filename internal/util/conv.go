package util

import (
	"strconv"
)

// ParseID 解析路径中的正整数ID
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}
