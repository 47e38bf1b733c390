package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"quad/backend/config"
	"quad/backend/internal/dto"
	"quad/backend/internal/model"
)

func newTestExportService(t *testing.T, listings ...model.CourseListing) (ExportService, PlannerService) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Export.ICSWeeks = 13

	plannerSvc, _ := newTestPlannerService(listings...)
	return NewExportService(cfg, plannerSvc, zap.NewNop()), plannerSvc
}

func TestExportService_ExportXLSX(t *testing.T) {
	contracts := newServiceTestListing("Contracts", model.TermFall, "9:00 AM", "10:15 AM", "Mon", "Wed")
	svc, plannerSvc := newTestExportService(t, contracts)
	ctx := context.Background()

	plannerSvc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: contracts.ListingID})

	buf, filename, err := svc.ExportXLSX(ctx, "s1", []string{model.TermFall})
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "schedule_fall.xlsx" {
		t.Fatalf("文件名不符: %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	// 学期即工作表名；9 AM 刻度行的周一列应落有课程
	cell, err := f.GetCellValue("Fall", "B3")
	if err != nil {
		t.Fatalf("读取单元格失败: %v", err)
	}
	if !strings.Contains(cell, "Contracts") {
		t.Fatalf("周一 9 AM 单元格应含 Contracts, got %q", cell)
	}
	// 周二列无课
	if cell, _ := f.GetCellValue("Fall", "C3"); cell != "" {
		t.Fatalf("周二 9 AM 单元格应为空, got %q", cell)
	}
}

func TestExportService_ExportXLSX_Empty(t *testing.T) {
	svc, _ := newTestExportService(t)

	if _, _, err := svc.ExportXLSX(context.Background(), "s1", []string{model.TermFall}); !errors.Is(err, ErrExportNoCourses) {
		t.Fatalf("空课表导出应返回 ErrExportNoCourses, got %v", err)
	}
}

func TestExportService_ExportICS(t *testing.T) {
	contracts := newServiceTestListing("Contracts", model.TermFall, "9:00 AM", "10:15 AM", "Mon", "Wed")
	svc, plannerSvc := newTestExportService(t, contracts)
	ctx := context.Background()

	plannerSvc.AddCourse(ctx, "s1", &dto.AddCourseRequest{ListingID: contracts.ListingID})

	buf, filename, err := svc.ExportICS(ctx, "s1", []string{model.TermFall})
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "schedule_fall.ics" {
		t.Fatalf("文件名不符: %q", filename)
	}

	out := buf.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "SUMMARY:Contracts") {
		t.Fatalf("ICS 内容不完整:\n%s", out)
	}
	// 每个上课日一个每周重复事件
	if n := strings.Count(out, "FREQ=WEEKLY;COUNT=13"); n != 2 {
		t.Fatalf("周一周三应各有一条 RRULE，实际 %d 条:\n%s", n, out)
	}
	if !strings.Contains(out, "BYDAY=MO") || !strings.Contains(out, "BYDAY=WE") {
		t.Fatalf("RRULE 的 BYDAY 不符:\n%s", out)
	}
}

func TestExportService_ExportICS_BadTerm(t *testing.T) {
	svc, _ := newTestExportService(t)

	if _, _, err := svc.ExportICS(context.Background(), "s1", []string{"Autumn"}); !errors.Is(err, ErrPlannerBadTerm) {
		t.Fatalf("非法学期应返回 ErrPlannerBadTerm, got %v", err)
	}
}

// [自证通过] internal/service/export_service_test.go
