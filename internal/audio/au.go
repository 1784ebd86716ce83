// Package audio 解码 ebiten 自带解码器不支持的音频格式
package audio

import (
	"encoding/binary"
	"fmt"
)

// Sun/NeXT .au 文件头（大端，至少 24 字节）
const (
	auMagic      = 0x2e736e64 // ".snd"
	auHeaderSize = 24

	auEncodingULaw  = 1 // 8-bit μ-law
	auEncodingPCM16 = 3 // 16-bit 线性 PCM（大端）
)

// AUClip 解码后的 .au 音频
// Data 为 16-bit 小端立体声 PCM，与 ebiten 解码器的输出格式一致
type AUClip struct {
	Data       []byte
	SampleRate int
	Channels   int // 源文件声道数
}

// DecodeAU 解码 .au 文件
// 支持 μ-law 和 16-bit 线性 PCM，单声道会复制为双声道
func DecodeAU(raw []byte) (*AUClip, error) {
	if len(raw) < auHeaderSize {
		return nil, fmt.Errorf("AU data too short: %d bytes", len(raw))
	}

	magic := binary.BigEndian.Uint32(raw[0:4])
	if magic != auMagic {
		return nil, fmt.Errorf("invalid AU magic number: 0x%08x", magic)
	}
	offset := binary.BigEndian.Uint32(raw[4:8])
	size := binary.BigEndian.Uint32(raw[8:12])
	encoding := binary.BigEndian.Uint32(raw[12:16])
	sampleRate := binary.BigEndian.Uint32(raw[16:20])
	channels := binary.BigEndian.Uint32(raw[20:24])

	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("unsupported AU channel count: %d", channels)
	}
	if sampleRate == 0 {
		return nil, fmt.Errorf("invalid AU sample rate: 0")
	}
	if offset < auHeaderSize || int(offset) > len(raw) {
		return nil, fmt.Errorf("invalid AU data offset: %d (file size %d)", offset, len(raw))
	}

	body := raw[offset:]
	// 0xffffffff 表示长度未知，读到文件末尾
	if size != 0xffffffff && int(size) < len(body) {
		body = body[:size]
	}

	var samples []int16
	switch encoding {
	case auEncodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = mulawToLinear(b)
		}
	case auEncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported AU encoding: %d", encoding)
	}

	return &AUClip{
		Data:       toStereoLE(samples, int(channels)),
		SampleRate: int(sampleRate),
		Channels:   int(channels),
	}, nil
}

// mulawToLinear G.711 μ-law 解码
func mulawToLinear(u byte) int16 {
	u = ^u
	sign := u & 0x80
	exponent := (u >> 4) & 0x07
	mantissa := int32(u & 0x0f)

	sample := ((mantissa << 3) + 0x84) << exponent
	sample -= 0x84
	if sign != 0 {
		return int16(-sample)
	}
	return int16(sample)
}

// toStereoLE 将采样写成 16-bit 小端立体声
func toStereoLE(samples []int16, channels int) []byte {
	if channels == 2 {
		out := make([]byte, len(samples)/2*4)
		for i := 0; i+1 < len(samples); i += 2 {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(samples[i]))
			binary.LittleEndian.PutUint16(out[i*2+2:], uint16(samples[i+1]))
		}
		return out
	}

	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}
