package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	auaudio "github.com/decker502/dkdead/internal/audio"
	"github.com/decker502/dkdead/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

// PCMClip 解码后的音频数据（16 位立体声 PCM）
// 播放时每次基于同一份数据创建新的流，因此可以叠加播放并单独变调
type PCMClip struct {
	Data       []byte
	SampleRate int
}

// ResourceManager manages loading and caching of game resources.
// Audio files are decoded once into PCM and cached by path; the font face
// source is created lazily from the bundled Go font.
type ResourceManager struct {
	audioContext *audio.Context // 可为 nil（测试中只解码不播放）
	config       *ResourceConfig
	resourceMap  map[string]string   // 资源ID -> 完整路径
	clipCache    map[string]*PCMClip // 路径 -> 解码后的音频
	faceSource   *text.GoTextFaceSource
	faces        map[float64]*text.GoTextFace
}

// NewResourceManager creates a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context used for playback (may be nil when only decoding).
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext: audioContext,
		resourceMap:  make(map[string]string),
		clipCache:    make(map[string]*PCMClip),
		faces:        make(map[float64]*text.GoTextFace),
	}
}

// AudioContext 返回全局音频上下文
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// LoadResourceConfig 加载资源配置并建立 ID -> 路径映射
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := readFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	return rm.ParseResourceConfig(data)
}

// ParseResourceConfig 解析资源配置 YAML
func (rm *ResourceManager) ParseResourceConfig(data []byte) error {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse resource config: %w", err)
	}
	rm.config = &cfg
	rm.buildResourceMap()
	return nil
}

// buildResourceMap 建立资源ID到完整路径的映射
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	for _, list := range [][]SoundResource{rm.config.Sounds, rm.config.Music} {
		for _, res := range list {
			if _, dup := rm.resourceMap[res.ID]; dup {
				log.Printf("[ResourceManager] Warning: duplicate resource id %s, keeping the first", res.ID)
				continue
			}
			rm.resourceMap[res.ID] = buildFullPath(rm.config.BasePath, res.Path)
		}
	}
	log.Printf("[ResourceManager] Resource map built: %d entries", len(rm.resourceMap))
}

// ResolvePath 返回资源ID对应的路径
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	p, ok := rm.resourceMap[resourceID]
	return p, ok
}

// LoadClipByID 通过资源ID加载音频
func (rm *ResourceManager) LoadClipByID(resourceID string) (*PCMClip, error) {
	p, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil, fmt.Errorf("audio resource %s not found in resource config", resourceID)
	}
	return rm.LoadClip(p)
}

// LoadClip 加载并解码音频文件（支持 .wav / .ogg / .mp3），结果按路径缓存
func (rm *ResourceManager) LoadClip(path string) (*PCMClip, error) {
	if clip, exists := rm.clipCache[path]; exists {
		return clip, nil
	}

	raw, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	clip, err := DecodeClip(raw, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w", path, err)
	}

	rm.clipCache[path] = clip
	return clip, nil
}

// DecodeClip 按扩展名解码音频数据为 PCM
func DecodeClip(raw []byte, ext string) (*PCMClip, error) {
	reader := bytes.NewReader(raw)

	var (
		stream     io.Reader
		sampleRate int
	)
	switch strings.ToLower(ext) {
	case ".wav":
		s, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV: %w", err)
		}
		stream, sampleRate = s, s.SampleRate()
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG: %w", err)
		}
		stream, sampleRate = s, s.SampleRate()
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3: %w", err)
		}
		stream, sampleRate = s, s.SampleRate()
	case ".au":
		clip, err := auaudio.DecodeAU(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU: %w", err)
		}
		return &PCMClip{Data: clip.Data, SampleRate: clip.SampleRate}, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .ogg, .mp3, .au)", ext)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio: %w", err)
	}
	return &PCMClip{Data: data, SampleRate: sampleRate}, nil
}

// NewClipStream 为音频创建播放流
// pitch 通过改变源采样率实现（同时改变速度），1.0 为原调
func NewClipStream(clip *PCMClip, pitch float64, targetSampleRate int) io.ReadSeeker {
	src := bytes.NewReader(clip.Data)
	if pitch <= 0 {
		pitch = 1
	}
	from := int(float64(clip.SampleRate) * pitch)
	if from == targetSampleRate {
		return src
	}
	return audio.Resample(src, int64(len(clip.Data)), from, targetSampleRate)
}

// LoadFont 返回指定字号的字体（内置 Go Regular 字体）
func (rm *ResourceManager) LoadFont(size float64) (*text.GoTextFace, error) {
	if face, ok := rm.faces[size]; ok {
		return face, nil
	}
	if rm.faceSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source: %w", err)
		}
		rm.faceSource = source
	}
	face := &text.GoTextFace{Source: rm.faceSource, Size: size}
	rm.faces[size] = face
	return face, nil
}

// readFile 优先从嵌入资源读取，未初始化时回退到磁盘
func readFile(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
