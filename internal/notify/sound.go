package notify

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"focusflow/internal/core/model"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

type audioOutput interface {
	Init(format beep.Format) error
	Clear()
	Play(streamer beep.Streamer)
}

type speakerOutput struct {
	once sync.Once
	err  error
}

func (output *speakerOutput) Init(format beep.Format) error {
	output.once.Do(func() {
		output.err = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	return output.err
}

func (output *speakerOutput) Clear() {
	speaker.Clear()
}

func (output *speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

// Sound plays the alert sound at full volume. A new alert cuts off the
// previous one.
type Sound struct {
	mu     sync.Mutex
	buffer *beep.Buffer
	output audioOutput
}

// NewSound decodes WAV data once. The speaker is opened on the first alert.
func NewSound(wavData []byte) (*Sound, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(wavData))
	if err != nil {
		return nil, fmt.Errorf("decode alert sound: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read alert sound: %w", err)
	}

	return &Sound{buffer: buffer, output: &speakerOutput{}}, nil
}

// Deliver plays the sound.
func (sound *Sound) Deliver(model.Alert) error {
	sound.mu.Lock()
	defer sound.mu.Unlock()

	if err := sound.output.Init(sound.buffer.Format()); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	sound.output.Clear()
	sound.output.Play(&effects.Volume{
		Streamer: sound.buffer.Streamer(0, sound.buffer.Len()),
		Base:     2,
		Volume:   0,
	})
	return nil
}
