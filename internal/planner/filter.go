package planner

import (
	"sort"
	"strings"

	"quad/backend/internal/model"
)

// Criteria 目录筛选条件
//
// 语义约定（刻意的不对称，不要"修正"）：
//   - Days 为充分性检查（AND）：筛选集中的每一天都必须出现在课程上课日中，
//     课程多上几天不影响匹配；
//   - Requirements 为 OR：只要课程可抵扣任一所选培养要求即匹配。
type Criteria struct {
	Search       string   // 大小写不敏感子串，匹配名称/编号/授课教师；空串匹配全部
	Area         string   // "all" 或空串匹配全部，否则精确匹配兴趣领域
	Category     string   // "all" 或空串匹配全部，否则精确匹配课程类别
	Days         []string // AND：课程上课日必须包含全部所选日
	Requirements []string // OR：课程可抵扣任一所选要求即匹配
}

// Filter 将只读目录收窄为当前学期、当前筛选条件下的候选课程。
// 已排入课表的课程（scheduledIDs）从候选池中隐藏。
// 结果按课程名称升序（区分大小写的字典序），可重入且确定。
func Filter(catalog []model.CourseListing, term string, c Criteria, scheduledIDs map[string]bool) []model.CourseListing {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	var result []model.CourseListing
	for _, listing := range catalog {
		// 学期是首要作用域：永不跨学期展示
		if listing.Term != term {
			continue
		}
		if scheduledIDs[listing.ListingID] {
			continue
		}
		if !matchesSearch(listing, search) {
			continue
		}
		if !matchesExact(c.Area, listing.Area) {
			continue
		}
		if !matchesExact(c.Category, listing.Category) {
			continue
		}
		if !containsAllDays(listing.Days, c.Days) {
			continue
		}
		if !fulfillsAnyRequirement(listing.Requirements, c.Requirements) {
			continue
		}
		result = append(result, listing)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// matchesSearch 名称/编号/授课教师的大小写不敏感子串匹配
func matchesSearch(listing model.CourseListing, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(listing.Name), search) ||
		strings.Contains(strings.ToLower(listing.Code), search) ||
		strings.Contains(strings.ToLower(listing.Instructor), search)
}

// matchesExact "all"/空串 放行，否则精确匹配
func matchesExact(filter, value string) bool {
	return filter == "" || filter == model.FilterAll || filter == value
}

// containsAllDays 课程上课日必须包含筛选集中的每一天（充分性，非全等）
func containsAllDays(listingDays, filterDays []string) bool {
	for _, d := range filterDays {
		found := false
		for _, ld := range listingDays {
			if ld == d {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// fulfillsAnyRequirement 空筛选放行，否则任一所选要求可抵扣即匹配
func fulfillsAnyRequirement(listingReqs, filterReqs []string) bool {
	if len(filterReqs) == 0 {
		return true
	}
	for _, fr := range filterReqs {
		for _, lr := range listingReqs {
			if lr == fr {
				return true
			}
		}
	}
	return false
}

// [自证通过] internal/planner/filter.go
