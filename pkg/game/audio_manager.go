package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 播放单次音效（支持音量和音高）
//   - 管理唯一的循环背景音乐通道
//   - 从 SettingsManager 读取音量和开关
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // 可为 nil

	oneShots []*audio.Player // 正在播放的音效，播放结束后在 Update 中释放
	music    *MusicChannel
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
	}
}

// PlayOneShot 播放一次音效
// 同一音效可以叠加播放；每次播放使用独立的音高
//
// 参数：
//   - clipID: 音效资源ID
//   - volume: 音效自身音量，会再乘以设置中的音效音量
//   - pitch: 音高倍率，1.0 为原调
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayOneShot(clipID string, volume, pitch float64) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	ctx := am.resourceManager.AudioContext()
	if ctx == nil {
		return false
	}

	clip, err := am.resourceManager.LoadClipByID(clipID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", clipID, err)
		return false
	}

	player, err := ctx.NewPlayer(NewClipStream(clip, pitch, ctx.SampleRate()))
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create player for %s: %v", clipID, err)
		return false
	}
	player.SetVolume(clampVolume(volume * am.soundVolume()))
	player.Play()
	am.oneShots = append(am.oneShots, player)

	log.Printf("[AudioManager] Playing sound: %s (volume: %.2f, pitch: %.2f)", clipID, volume, pitch)
	return true
}

// PlayMusic 开始循环播放背景音乐，返回音乐通道
// 已在播放同一首时直接返回当前通道
func (am *AudioManager) PlayMusic(musicID string) (*MusicChannel, error) {
	if am.music != nil && am.music.ID() == musicID {
		am.music.Play()
		return am.music, nil
	}
	ctx := am.resourceManager.AudioContext()
	if ctx == nil {
		return nil, fmt.Errorf("audio context not available")
	}

	clip, err := am.resourceManager.LoadClipByID(musicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load music %s: %w", musicID, err)
	}

	stream := NewClipStream(clip, 1, ctx.SampleRate())
	length := int64(len(clip.Data))
	if clip.SampleRate != ctx.SampleRate() {
		length = length * int64(ctx.SampleRate()) / int64(clip.SampleRate)
		length -= length % 4 // 16 位立体声帧对齐
	}
	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return nil, fmt.Errorf("failed to create music player for %s: %w", musicID, err)
	}

	am.StopMusic()
	am.music = newMusicChannel(musicID, player)
	am.music.SetVolume(am.NominalMusicVolume())
	am.music.Play()

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, am.music.Volume())
	return am.music, nil
}

// Music 当前音乐通道，未播放时为 nil
func (am *AudioManager) Music() *MusicChannel {
	return am.music
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.music != nil {
		am.music.Pause()
		am.music = nil
	}
}

// NominalMusicVolume 正常情况下的音乐音量（音乐关闭时为 0）
func (am *AudioManager) NominalMusicVolume() float64 {
	if am.settingsManager == nil {
		return 0.7
	}
	settings := am.settingsManager.GetSettings()
	if !settings.MusicEnabled {
		return 0
	}
	return settings.MusicVolume
}

// soundVolume 获取音效音量设置
func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}

// Update 释放播放完毕的音效
func (am *AudioManager) Update() {
	alive := am.oneShots[:0]
	for _, p := range am.oneShots {
		if p.IsPlaying() {
			alive = append(alive, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close sound player: %v", err)
		}
	}
	for i := len(alive); i < len(am.oneShots); i++ {
		am.oneShots[i] = nil
	}
	am.oneShots = alive
}

// ActiveSoundCount 正在播放的音效数量
func (am *AudioManager) ActiveSoundCount() int {
	return len(am.oneShots)
}
