package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKey 唯一约束冲突。TranslateError 已开时走 ErrDuplicatedKey，
// 其余驱动/版本兜底看错误文本。
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

func notFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
