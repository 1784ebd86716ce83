// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// data/ 下是配置文件，assets/ 下是音频素材；assets 可以不提供，
// 缺失时仅影响音频播放。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	assetsFS    fs.FS
	initialized bool
)

// Init 初始化文件系统
// 必须在 main() 开始时、任何资源加载之前调用
//
// 参数：
//   - data: 包含 data/ 目录的文件系统（通常是 embed.FS）
//   - assets: 包含 assets/ 目录的文件系统，可为 nil
func Init(data, assets fs.FS) {
	dataFS = data
	assetsFS = assets
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

// pick 根据路径前缀选择文件系统
func pick(path string) (fs.FS, error) {
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}

	switch {
	case strings.HasPrefix(path, "data/"):
		return dataFS, nil
	case strings.HasPrefix(path, "assets/"):
		if assetsFS == nil {
			return nil, fmt.Errorf("assets filesystem not configured: %s", path)
		}
		return assetsFS, nil
	}
	return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
}

// Open 根据路径前缀选择正确的文件系统并打开文件
// 路径必须以 "assets/" 或 "data/" 开头
func Open(path string) (fs.File, error) {
	path = normalize(path)
	fsys, err := pick(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(path)
}

// ReadFile 根据路径前缀选择正确的文件系统并读取文件内容
// 路径必须以 "assets/" 或 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	fsys, err := pick(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配文件
// 路径模式必须以 "assets/" 或 "data/" 开头
func Glob(pattern string) ([]string, error) {
	pattern = normalize(pattern)
	fsys, err := pick(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, pattern)
}
