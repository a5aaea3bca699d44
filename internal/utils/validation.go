package utils

import (
	"time"

	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

// IsPastDate 判断 "2006-01-02" 格式的日期是否早于 now 所在的那一天
func IsPastDate(s string, now time.Time) bool {
	d, err := domain.ParseDate(s)
	if err != nil {
		return false
	}

	return d.Before(domain.DateOf(now).Time)
}
