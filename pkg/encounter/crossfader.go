package encounter

import (
	"log"
	"reflect"

	"github.com/decker502/dkdead/pkg/utils"
)

// VolumeChannel 可调节音量的播放通道（如循环播放的背景音乐）
// 渐变任务以通道为键，实现类型必须可比较（通常是指针接收者）
type VolumeChannel interface {
	Volume() float64
	SetVolume(volume float64)
}

// fadeTask 单个通道上正在进行的渐变
type fadeTask struct {
	start    float64
	target   float64
	duration float64
	elapsed  float64
}

// Crossfader 音量线性渐变器
// 每个通道最多一个渐变任务，新请求覆盖旧请求，
// 起点总是读取通道当前音量，被打断的渐变从已到达的位置继续
type Crossfader struct {
	tasks map[VolumeChannel]*fadeTask
	order []VolumeChannel // 保持更新顺序稳定
}

// NewCrossfader 创建渐变器
func NewCrossfader() *Crossfader {
	return &Crossfader{
		tasks: make(map[VolumeChannel]*fadeTask),
	}
}

// Fade 在 duration 秒内把通道音量线性调整到 target
// duration <= 0 时立即生效；不可比较的通道无法登记任务，同样立即生效
func (c *Crossfader) Fade(ch VolumeChannel, target, duration float64) {
	if ch == nil {
		return
	}
	if !reflect.TypeOf(ch).Comparable() {
		log.Printf("[Crossfader] Warning: channel type %T is not comparable, applying volume %.2f immediately", ch, target)
		ch.SetVolume(target)
		return
	}
	if duration <= 0 {
		c.remove(ch)
		ch.SetVolume(target)
		return
	}

	if _, exists := c.tasks[ch]; !exists {
		c.order = append(c.order, ch)
	}
	c.tasks[ch] = &fadeTask{
		start:    ch.Volume(),
		target:   target,
		duration: duration,
	}
}

// Update 推进所有渐变任务
func (c *Crossfader) Update(deltaTime float64) {
	if len(c.tasks) == 0 {
		return
	}

	finished := make([]VolumeChannel, 0)
	for _, ch := range c.order {
		task := c.tasks[ch]
		task.elapsed += deltaTime
		if task.elapsed >= task.duration {
			ch.SetVolume(task.target)
			finished = append(finished, ch)
			continue
		}
		t := task.elapsed / task.duration
		ch.SetVolume(utils.Lerp(task.start, task.target, t))
	}

	for _, ch := range finished {
		c.remove(ch)
	}
}

// IsFading 通道是否有进行中的渐变
func (c *Crossfader) IsFading(ch VolumeChannel) bool {
	_, ok := c.tasks[ch]
	return ok
}

// Target 返回通道当前渐变的目标音量
func (c *Crossfader) Target(ch VolumeChannel) (float64, bool) {
	task, ok := c.tasks[ch]
	if !ok {
		return 0, false
	}
	return task.target, true
}

func (c *Crossfader) remove(ch VolumeChannel) {
	if _, ok := c.tasks[ch]; !ok {
		return
	}
	delete(c.tasks, ch)
	for i, o := range c.order {
		if o == ch {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
