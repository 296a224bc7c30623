package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL 死锁与锁等待超时
const (
	errDeadlock        = 1213
	errLockWaitTimeout = 1205
)

// IsRetryable 唯一键冲突或锁冲突, 整个事务可以安全重试
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == errDeadlock || me.Number == errLockWaitTimeout
	}
	return false
}
