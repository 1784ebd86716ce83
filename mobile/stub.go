//go:build !mobile

// Package mobile 的桌面端占位
// 真正的绑定入口在 mobile.go（-tags mobile），这里只保留导出符号，
// 使 go build ./... 和 go test ./... 在桌面端也能通过
package mobile

// Dummy ebitenmobile 需要至少一个导出函数
func Dummy() {}
