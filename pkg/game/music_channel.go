package game

// musicPlayer 背景音乐播放器需要的能力（*audio.Player 满足此接口）
type musicPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Volume() float64
	SetVolume(volume float64)
}

// MusicChannel 循环播放的背景音乐通道
// 实现 encounter.VolumeChannel，遭遇战通过它压低/恢复音乐
type MusicChannel struct {
	id     string
	player musicPlayer
}

func newMusicChannel(id string, player musicPlayer) *MusicChannel {
	return &MusicChannel{id: id, player: player}
}

// ID 音乐资源ID
func (c *MusicChannel) ID() string {
	return c.id
}

// Volume 当前音量
func (c *MusicChannel) Volume() float64 {
	return c.player.Volume()
}

// SetVolume 设置音量（限制在 0.0 ~ 1.0）
func (c *MusicChannel) SetVolume(volume float64) {
	c.player.SetVolume(clampVolume(volume))
}

// Play 开始或恢复播放
func (c *MusicChannel) Play() {
	if !c.player.IsPlaying() {
		c.player.Play()
	}
}

// Pause 暂停播放
func (c *MusicChannel) Pause() {
	c.player.Pause()
}

// IsPlaying 是否正在播放
func (c *MusicChannel) IsPlaying() bool {
	return c.player.IsPlaying()
}
