//go:build (linux && cgo) || windows || darwin

package audio

import (
	"fmt"
	"time"

	"github.com/gigurra/audix/cmd/play/session"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// SpeakerSampleRate is the rate the speaker is opened at; streams are
// resampled to it.
const SpeakerSampleRate = beep.SampleRate(44100)

// SpeakerSink renders streams on the default output device. The speaker
// lock guards every field below it.
type SpeakerSink struct {
	sampleRate beep.SampleRate
	queue      *queue
	ctrl       *beep.Ctrl
	volume     *effects.Volume
}

// NewSpeakerSink opens the default output device and starts streaming
// silence until something is appended.
func NewSpeakerSink() (*SpeakerSink, error) {
	sr := SpeakerSampleRate
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudioDeviceUnavailable, err)
	}

	q := &queue{}
	ctrl := &beep.Ctrl{Streamer: q}
	volume := &effects.Volume{Streamer: ctrl, Base: 2}

	speaker.Play(volume)

	return &SpeakerSink{
		sampleRate: sr,
		queue:      q,
		ctrl:       ctrl,
		volume:     volume,
	}, nil
}

func (s *SpeakerSink) Append(st session.Stream) error {
	stream, ok := st.(*Stream)
	if !ok {
		return fmt.Errorf("speaker sink cannot play %T", st)
	}

	resampled := beep.Resample(4, stream.format.SampleRate, s.sampleRate, stream.streamer)

	speaker.Lock()
	s.queue.add(stream, resampled)
	speaker.Unlock()
	return nil
}

func (s *SpeakerSink) Play() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

func (s *SpeakerSink) Pause() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Stop drops everything queued. The paused flag is kept.
func (s *SpeakerSink) Stop() {
	speaker.Lock()
	s.queue.clear()
	speaker.Unlock()
}

func (s *SpeakerSink) SetVolume(level float64) {
	v, silent := gain(level)
	speaker.Lock()
	s.volume.Volume = v
	s.volume.Silent = silent
	speaker.Unlock()
}

func (s *SpeakerSink) IsEmpty() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.queue.empty()
}

func (s *SpeakerSink) SeekTo(position time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()
	return s.queue.seekHead(position)
}

// Close stops playback and releases the device.
func (s *SpeakerSink) Close() {
	s.Stop()
	speaker.Clear()
	speaker.Close()
}
