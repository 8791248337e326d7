// Package wavcodec wraps raw PCM payloads in a canonical RIFF/WAVE
// container and reads headers back. Only uncompressed PCM is supported;
// every size field is computed from the actual payload length.
package wavcodec

import (
	"encoding/binary"
	"fmt"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

const (
	headerSize   = 44
	pcmFormatTag = 1
)

// Encode wraps pcm in a WAV container describing format. The payload is
// copied; the input slice is not retained.
func Encode(format domain.AudioFormat, pcm []byte) ([]byte, error) {
	if format.SampleRate <= 0 || format.Channels <= 0 || format.BitsPerSample <= 0 {
		return nil, fmt.Errorf("invalid pcm format %+v", format)
	}

	blockAlign := format.Channels * format.BitsPerSample / 8
	out := make([]byte, headerSize+len(pcm))

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], pcmFormatTag)
	binary.LittleEndian.PutUint16(out[22:24], uint16(format.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(format.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(format.ByteRate()))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], uint16(format.BitsPerSample))

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[headerSize:], pcm)

	return out, nil
}

// DecodeHeader reads the container header of an Encode-produced WAV and
// returns the declared format and payload length.
func DecodeHeader(wav []byte) (domain.AudioFormat, int, error) {
	if len(wav) < headerSize {
		return domain.AudioFormat{}, 0, fmt.Errorf("wav too short: %d bytes", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return domain.AudioFormat{}, 0, fmt.Errorf("not a RIFF/WAVE container")
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		return domain.AudioFormat{}, 0, fmt.Errorf("unexpected chunk layout")
	}
	if tag := binary.LittleEndian.Uint16(wav[20:22]); tag != pcmFormatTag {
		return domain.AudioFormat{}, 0, fmt.Errorf("unsupported format tag %d", tag)
	}

	format := domain.AudioFormat{
		Channels:      int(binary.LittleEndian.Uint16(wav[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(wav[24:28])),
		BitsPerSample: int(binary.LittleEndian.Uint16(wav[34:36])),
	}
	payloadLen := int(binary.LittleEndian.Uint32(wav[40:44]))
	if payloadLen != len(wav)-headerSize {
		return domain.AudioFormat{}, 0, fmt.Errorf("data length %d does not match payload %d", payloadLen, len(wav)-headerSize)
	}

	return format, payloadLen, nil
}
