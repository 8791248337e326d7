package wavcodec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	format := domain.AudioFormat{SampleRate: 24000, Channels: 1, BitsPerSample: 16}
	pcm := make([]byte, 4800)
	for i := range pcm {
		pcm[i] = byte(i % 251)
	}

	wav, err := Encode(format, pcm)
	if err != nil {
		t.Fatal("Failed to encode:", err)
	}
	if len(wav) != headerSize+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", headerSize+len(pcm), len(wav))
	}
	if !bytes.Equal(wav[headerSize:], pcm) {
		t.Fatal("payload bytes were altered")
	}

	decoded, payloadLen, err := DecodeHeader(wav)
	if err != nil {
		t.Fatal("Failed to decode header:", err)
	}
	if decoded != format {
		t.Fatalf("expected format %+v, got %+v", format, decoded)
	}
	if payloadLen != len(pcm) {
		t.Fatalf("expected payload length %d, got %d", len(pcm), payloadLen)
	}
}

func TestEncodeHeaderFields(t *testing.T) {
	format := domain.AudioFormat{SampleRate: 24000, Channels: 1, BitsPerSample: 16}
	pcm := []byte{1, 2, 3, 4}

	wav, err := Encode(format, pcm)
	if err != nil {
		t.Fatal("Failed to encode:", err)
	}

	if riffSize := binary.LittleEndian.Uint32(wav[4:8]); riffSize != uint32(36+len(pcm)) {
		t.Errorf("expected riff size %d, got %d", 36+len(pcm), riffSize)
	}
	if byteRate := binary.LittleEndian.Uint32(wav[28:32]); byteRate != 48000 {
		t.Errorf("expected byte rate 48000, got %d", byteRate)
	}
	if blockAlign := binary.LittleEndian.Uint16(wav[32:34]); blockAlign != 2 {
		t.Errorf("expected block align 2, got %d", blockAlign)
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	format := domain.AudioFormat{SampleRate: 24000, Channels: 1, BitsPerSample: 16}

	wav, err := Encode(format, nil)
	if err != nil {
		t.Fatal("Failed to encode empty payload:", err)
	}

	_, payloadLen, err := DecodeHeader(wav)
	if err != nil {
		t.Fatal("Failed to decode header:", err)
	}
	if payloadLen != 0 {
		t.Fatalf("expected empty payload, got %d bytes", payloadLen)
	}
}

func TestEncodeRejectsInvalidFormat(t *testing.T) {
	if _, err := Encode(domain.AudioFormat{SampleRate: 0, Channels: 1, BitsPerSample: 16}, nil); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if _, err := Encode(domain.AudioFormat{SampleRate: 24000, Channels: 0, BitsPerSample: 16}, nil); err == nil {
		t.Error("expected error for zero channels")
	}
}

func TestDecodeHeaderRejectsGarbage(t *testing.T) {
	if _, _, err := DecodeHeader([]byte("too short")); err == nil {
		t.Error("expected error for truncated input")
	}

	junk := make([]byte, headerSize)
	copy(junk, "JUNK")
	if _, _, err := DecodeHeader(junk); err == nil {
		t.Error("expected error for non-RIFF input")
	}
}
