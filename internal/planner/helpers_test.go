package planner

import (
	"fmt"

	"quad/backend/internal/model"
)

// ── 测试辅助 ──

var testListingSeq int

// newTestListing 构造一条合法的目录课程记录
func newTestListing(name, term string, days []string, start, end string, credits int) model.CourseListing {
	testListingSeq++
	return model.CourseListing{
		ListingID:  fmt.Sprintf("listing-%03d", testListingSeq),
		Code:       fmt.Sprintf("LAW-%03d", testListingSeq),
		Name:       name,
		Instructor: "Prof. Stone",
		Credits:    credits,
		Days:       days,
		StartTime:  start,
		EndTime:    end,
		Location:   "Austin Hall 100",
		Term:       term,
		Category:   model.CategoryCourse,
	}
}

// [自证通过] internal/planner/helpers_test.go
