package main

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestClickSamplesDeterministic(t *testing.T) {
	first := clickSamples()
	second := clickSamples()
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs: %d vs %d", i, first[i], second[i])
		}
	}

	if want := clickSampleCount(); len(first) != want {
		t.Errorf("sample count = %d, want %d", len(first), want)
	}
	// 22050 Hz for 30ms is 661.5 samples, truncated.
	if got := clickSampleCount(); got != 661 {
		t.Errorf("clickSampleCount() = %d, want 661", got)
	}
}

func TestClickSamplesDecay(t *testing.T) {
	samples := clickSamples()
	early := samples[0]
	late := samples[len(samples)-1]
	if abs16(late) >= abs16(early) {
		t.Errorf("no decay: first %d, last %d", early, late)
	}
	if abs16(early) > clickAmplitude {
		t.Errorf("first sample %d exceeds amplitude %d", early, clickAmplitude)
	}
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func TestEncodeWAVHeader(t *testing.T) {
	samples := []int16{100, -100, 50}
	wav := encodeWAV(samples, clickSampleRate)

	if !bytes.Equal(wav[0:4], []byte("RIFF")) {
		t.Errorf("missing RIFF marker: %q", wav[0:4])
	}
	if !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Errorf("missing WAVE marker: %q", wav[8:12])
	}
	if !bytes.Equal(wav[12:16], []byte("fmt ")) {
		t.Errorf("missing fmt chunk: %q", wav[12:16])
	}
	if !bytes.Equal(wav[36:40], []byte("data")) {
		t.Errorf("missing data chunk: %q", wav[36:40])
	}

	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("channels = %d, want mono", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != clickSampleRate {
		t.Errorf("sample rate = %d, want %d", got, clickSampleRate)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data length = %d, want %d", got, len(samples)*2)
	}
	if len(wav) != 44+len(samples)*2 {
		t.Errorf("total length = %d, want %d", len(wav), 44+len(samples)*2)
	}
}

func TestClickSynthReusesFile(t *testing.T) {
	c := &clickSynth{enabled: true}
	defer c.Reset()

	first := c.Prepare()
	if first == "" {
		t.Fatal("Prepare returned no path")
	}
	if second := c.Prepare(); second != first {
		t.Errorf("second Prepare = %q, want reuse of %q", second, first)
	}

	c.Reset()
	if c.path != "" {
		t.Error("Reset kept the path")
	}
}

func TestClickSynthDisabled(t *testing.T) {
	c := &clickSynth{}
	if got := c.Prepare(); got != "" {
		t.Errorf("disabled synth produced %q", got)
	}
}
