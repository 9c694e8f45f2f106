package main

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"math"
	"os"
)

const (
	clickSampleRate = 22050
	clickFreq       = 880.0
	clickSeconds    = 0.03
	clickAmplitude  = 9000
)

// clickSampleCount is the number of samples in one click.
func clickSampleCount() int {
	seconds := float64(clickSeconds)
	return int(clickSampleRate * seconds)
}

// clickSamples synthesizes the keystroke click: a short square wave fading
// out linearly. The same parameters always produce the same samples.
func clickSamples() []int16 {
	n := clickSampleCount()
	period := float64(clickSampleRate) / clickFreq
	samples := make([]int16, n)
	for i := range samples {
		amp := float64(clickAmplitude) * (1 - float64(i)/float64(n))
		if math.Mod(float64(i), period) < period/2 {
			samples[i] = int16(amp)
		} else {
			samples[i] = int16(-amp)
		}
	}
	return samples
}

// encodeWAV packs 16-bit mono PCM samples into a RIFF/WAVE byte stream.
func encodeWAV(samples []int16, sampleRate int) []byte {
	var buf bytes.Buffer
	dataLen := len(samples) * 2

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	for _, s := range samples {
		binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

// clickSynth writes the click sound to a temp file once per reveal cycle and
// hands the same path to every click of that cycle.
type clickSynth struct {
	enabled bool
	path    string
	failed  bool
}

// Prepare returns the path of the click WAV, writing it on first use.
// A synth that failed once stays silent until Reset.
func (c *clickSynth) Prepare() string {
	if !c.enabled || c.failed {
		return ""
	}
	if c.path != "" {
		return c.path
	}
	f, err := os.CreateTemp("", "tackboard-click-*.wav")
	if err != nil {
		slog.Warn("click synth failed", "error", err)
		c.failed = true
		return ""
	}
	defer f.Close()
	if _, err := f.Write(encodeWAV(clickSamples(), clickSampleRate)); err != nil {
		slog.Warn("click synth failed", "error", err)
		c.failed = true
		os.Remove(f.Name())
		return ""
	}
	c.path = f.Name()
	return c.path
}

// Reset discards the cycle's click file. The next Prepare re-synthesizes.
func (c *clickSynth) Reset() {
	if c.path != "" {
		os.Remove(c.path)
		c.path = ""
	}
	c.failed = false
}
