package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"quad/backend/internal/dto"
	"quad/backend/internal/model"
	"quad/backend/internal/planner"
	"quad/backend/internal/repository"
)

// ── 测试夹具 ──

var testListingSeq int

func newServiceTestListing(name, term, start, end string, days ...string) model.CourseListing {
	testListingSeq++
	return model.CourseListing{
		ListingID:  fmt.Sprintf("00000000-0000-0000-0000-%012d", testListingSeq),
		Code:       fmt.Sprintf("LAW-%03d", testListingSeq),
		Name:       name,
		Instructor: "Prof. Adams",
		Credits:    3,
		Days:       model.StringArray(days),
		StartTime:  start,
		EndTime:    end,
		Location:   "Room 101",
		Term:       term,
		Category:   model.CategoryCourse,
		Area:       "Public Law",
	}
}

func newTestPlannerService(listings ...model.CourseListing) (PlannerService, *mockSavedScheduleRepo) {
	saved := newMockSavedScheduleRepo()
	repo := &repository.Repository{
		Catalog:       newMockCatalogRepo(listings...),
		SavedSchedule: saved,
	}
	return NewPlannerService(repo, nil, zap.NewNop()), saved
}

// ════════════════════════════════════════════════════════════
// 排课
// ════════════════════════════════════════════════════════════

func TestPlannerService_AddCourse(t *testing.T) {
	contracts := newServiceTestListing("Contracts", model.TermFall, "9:00 AM", "10:15 AM", "Mon", "Wed")
	svc, _ := newTestPlannerService(contracts)
	ctx := context.Background()

	resp, err := svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: contracts.ListingID})
	if err != nil {
		t.Fatalf("排课应成功: %v", err)
	}
	if resp.Instance.InstanceID == "" {
		t.Fatal("实例 ID 不应为空")
	}
	if resp.Conflict != nil {
		t.Fatalf("空课表排课不应有冲突: %+v", resp.Conflict)
	}

	sched, err := svc.GetSchedule(ctx, "s1")
	if err != nil {
		t.Fatalf("查询课表应成功: %v", err)
	}
	if len(sched.Instances) != 1 || sched.TotalCredits != 3 {
		t.Fatalf("课表应含 1 门课共 3 学分，实际 %d 门 %d 学分",
			len(sched.Instances), sched.TotalCredits)
	}
}

func TestPlannerService_AddCourse_ConflictIsAdvisory(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")
	b := newServiceTestListing("Evidence", model.TermFall, "9:30 AM", "10:00 AM", "Mon")
	svc, _ := newTestPlannerService(a, b)
	ctx := context.Background()

	if _, err := svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID}); err != nil {
		t.Fatalf("排入第一门课应成功: %v", err)
	}

	resp, err := svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: b.ListingID})
	if err != nil {
		t.Fatalf("冲突课程也应排入成功: %v", err)
	}
	if resp.Conflict == nil {
		t.Fatal("应返回冲突报告")
	}
	if resp.Conflict.Instance.Listing.Name != "Torts" {
		t.Fatalf("冲突报告应指向已排课程 Torts, got %q", resp.Conflict.Instance.Listing.Name)
	}

	// 建议性冲突：两门课都在课表中
	sched, _ := svc.GetSchedule(ctx, "s1")
	if len(sched.Instances) != 2 {
		t.Fatalf("冲突不应阻止排课，课表应有 2 门，实际 %d", len(sched.Instances))
	}
}

func TestPlannerService_AddCourse_NotFound(t *testing.T) {
	svc, _ := newTestPlannerService()

	_, err := svc.AddCourse(context.Background(), "s1",
		&dto.AddCourseRequest{ListingID: "00000000-0000-0000-0000-999999999999"})
	if !errors.Is(err, ErrPlannerListingNotFound) {
		t.Fatalf("未知课程应返回 ErrPlannerListingNotFound, got %v", err)
	}
}

func TestPlannerService_CheckConflict(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")
	b := newServiceTestListing("Evidence", model.TermFall, "9:30 AM", "10:00 AM", "Mon")
	c := newServiceTestListing("Property", model.TermFall, "2:00 PM", "3:00 PM", "Fri")
	svc, _ := newTestPlannerService(a, b, c)
	ctx := context.Background()

	svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID})

	report, err := svc.CheckConflict(ctx, "s1", &dto.CheckConflictRequest{ListingID: b.ListingID})
	if err != nil {
		t.Fatalf("冲突预检应成功: %v", err)
	}
	if report == nil || report.SharedDays[0] != "Mon" {
		t.Fatalf("应检出周一冲突: %+v", report)
	}

	// 预检不改课表
	sched, _ := svc.GetSchedule(ctx, "s1")
	if len(sched.Instances) != 1 {
		t.Fatalf("预检不应排课，课表应仍为 1 门，实际 %d", len(sched.Instances))
	}

	clean, err := svc.CheckConflict(ctx, "s1", &dto.CheckConflictRequest{ListingID: c.ListingID})
	if err != nil || clean != nil {
		t.Fatalf("无冲突课程应返回 nil, got %+v, %v", clean, err)
	}
}

func TestPlannerService_RemoveAndClear(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")
	svc, _ := newTestPlannerService(a)
	ctx := context.Background()

	resp, _ := svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID})

	if err := svc.RemoveCourse(ctx, "s1", resp.Instance.InstanceID); err != nil {
		t.Fatalf("移除应成功: %v", err)
	}
	// 幂等：再删同一 ID 不报错
	if err := svc.RemoveCourse(ctx, "s1", resp.Instance.InstanceID); err != nil {
		t.Fatalf("重复移除应为空操作: %v", err)
	}

	svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID})
	if err := svc.ClearSchedule(ctx, "s1"); err != nil {
		t.Fatalf("清空应成功: %v", err)
	}
	sched, _ := svc.GetSchedule(ctx, "s1")
	if len(sched.Instances) != 0 {
		t.Fatalf("清空后课表应为空，实际 %d 门", len(sched.Instances))
	}
}

func TestPlannerService_SessionIsolation(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")
	svc, _ := newTestPlannerService(a)
	ctx := context.Background()

	svc.AddCourse(ctx, "alice", &dto.AddCourseRequest{ListingID: a.ListingID})

	sched, _ := svc.GetSchedule(ctx, "bob")
	if len(sched.Instances) != 0 {
		t.Fatalf("会话应互相隔离，bob 的课表应为空，实际 %d 门", len(sched.Instances))
	}
}

// ════════════════════════════════════════════════════════════
// 检索 / 布局 / 分享
// ════════════════════════════════════════════════════════════

func TestPlannerService_SearchCatalog_ExcludesScheduled(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")
	b := newServiceTestListing("Evidence", model.TermFall, "2:00 PM", "3:00 PM", "Tue")
	svc, _ := newTestPlannerService(a, b)
	ctx := context.Background()

	svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID})

	results, err := svc.SearchCatalog(ctx, "s1", &dto.CatalogListRequest{Term: model.TermFall})
	if err != nil {
		t.Fatalf("检索应成功: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Evidence" {
		t.Fatalf("已排课程应被排除，只剩 Evidence: %+v", results)
	}
}

func TestPlannerService_GetLayout(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")
	svc, _ := newTestPlannerService(a)
	ctx := context.Background()

	svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID})

	layout, err := svc.GetLayout(ctx, "s1", model.TermFall)
	if err != nil {
		t.Fatalf("布局应成功: %v", err)
	}
	if len(layout.TimeMarks) != 13 || layout.RowHeight != planner.RowHeight {
		t.Fatalf("网格元数据不符: %d 个刻度, 行高 %v", len(layout.TimeMarks), layout.RowHeight)
	}
	if len(layout.Days) != 1 || layout.Days[0].Day != "Mon" {
		t.Fatalf("应只有周一一列: %+v", layout.Days)
	}

	if _, err := svc.GetLayout(ctx, "s1", "Autumn"); !errors.Is(err, ErrPlannerBadTerm) {
		t.Fatalf("非法学期应返回 ErrPlannerBadTerm, got %v", err)
	}
}

func TestPlannerService_GetShareText_NoRedis(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon", "Wed")
	svc, _ := newTestPlannerService(a)
	ctx := context.Background()

	svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID})

	text, err := svc.GetShareText(ctx, "s1", model.TermFall)
	if err != nil {
		t.Fatalf("分享文本应成功: %v", err)
	}
	want := "Torts - Mon, Wed 9:00 AM-10:15 AM"
	if text != want {
		t.Fatalf("分享文本不符:\n得到 %q\n期望 %q", text, want)
	}
}

// ════════════════════════════════════════════════════════════
// 快照
// ════════════════════════════════════════════════════════════

func TestPlannerService_SnapshotLifecycle(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")
	b := newServiceTestListing("Evidence", model.TermSpring, "2:00 PM", "3:00 PM", "Tue")
	svc, saved := newTestPlannerService(a, b)
	ctx := context.Background()

	svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID})
	svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: b.ListingID})

	snap, err := svc.SaveSnapshot(ctx, "s1", &dto.SaveSnapshotRequest{
		Name:  "秋季方案",
		Terms: []string{model.TermFall},
	})
	if err != nil {
		t.Fatalf("保存快照应成功: %v", err)
	}
	if len(snap.Instances) != 1 {
		t.Fatalf("快照应只含秋季课程，实际 %d 门", len(snap.Instances))
	}
	if _, ok := saved.rows[snap.ID]; !ok {
		t.Fatal("快照应同步写入持久化副本")
	}

	// 载入整体替换：春季课程被替换掉
	sched, err := svc.LoadSnapshot(ctx, "s1", snap.ID)
	if err != nil {
		t.Fatalf("载入快照应成功: %v", err)
	}
	if len(sched.Instances) != 1 || sched.Instances[0].Listing.Name != "Torts" {
		t.Fatalf("载入应整体替换为快照内容: %+v", sched.Instances)
	}

	if _, err := svc.LoadSnapshot(ctx, "s1", "不存在"); !errors.Is(err, planner.ErrSnapshotNotFound) {
		t.Fatalf("载入不存在的快照应报错, got %v", err)
	}

	if err := svc.DeleteSnapshot(ctx, "s1", snap.ID); err != nil {
		t.Fatalf("删除快照应成功: %v", err)
	}
	if _, ok := saved.rows[snap.ID]; ok {
		t.Fatal("删除应同步移除持久化副本")
	}

	list, _ := svc.ListSnapshots(ctx, "s1")
	if len(list.Snapshots) != 0 {
		t.Fatalf("删除后列表应为空，实际 %d", len(list.Snapshots))
	}
}

func TestPlannerService_SaveSnapshot_ValidationErrors(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")
	svc, _ := newTestPlannerService(a)
	ctx := context.Background()

	svc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: a.ListingID})

	if _, err := svc.SaveSnapshot(ctx, "s1", &dto.SaveSnapshotRequest{
		Name: "  ", Terms: []string{model.TermFall},
	}); !errors.Is(err, planner.ErrSnapshotName) {
		t.Fatalf("空白名称应报错, got %v", err)
	}

	if _, err := svc.SaveSnapshot(ctx, "s1", &dto.SaveSnapshotRequest{
		Name: "冬季方案", Terms: []string{model.TermWinter},
	}); !errors.Is(err, planner.ErrSnapshotEmpty) {
		t.Fatalf("所选学期无课程应报错, got %v", err)
	}
}

func TestPlannerService_SessionRestoreFromPersisted(t *testing.T) {
	a := newServiceTestListing("Torts", model.TermFall, "9:00 AM", "10:15 AM", "Mon")

	saved := newMockSavedScheduleRepo()
	saved.rows["snap-1"] = &model.SavedSchedule{
		SavedScheduleID: "snap-1",
		SessionKey:      "s1",
		Name:            "历史方案",
		Terms:           model.StringArray{model.TermFall},
		CreatedAt:       time.Now().Add(-time.Hour),
		Entries: []model.SavedScheduleEntry{
			{EntryID: "e1", SavedScheduleID: "snap-1", InstanceID: "inst-1",
				ListingID: a.ListingID, Listing: &a},
		},
	}
	repo := &repository.Repository{
		Catalog:       newMockCatalogRepo(a),
		SavedSchedule: saved,
	}
	svc := NewPlannerService(repo, nil, zap.NewNop())
	ctx := context.Background()

	list, err := svc.ListSnapshots(ctx, "s1")
	if err != nil {
		t.Fatalf("列表应成功: %v", err)
	}
	if len(list.Snapshots) != 1 || list.Snapshots[0].Name != "历史方案" {
		t.Fatalf("冷启动应从持久化副本恢复快照: %+v", list.Snapshots)
	}

	// 恢复的快照可直接载入
	sched, err := svc.LoadSnapshot(ctx, "s1", "snap-1")
	if err != nil {
		t.Fatalf("载入恢复的快照应成功: %v", err)
	}
	if len(sched.Instances) != 1 || sched.Instances[0].Listing.Name != "Torts" {
		t.Fatalf("载入内容不符: %+v", sched.Instances)
	}
}

// [自证通过] internal/service/planner_service_test.go
