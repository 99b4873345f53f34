// package config reads and writes the TOML file the host commands are
// driven by.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pfcm/picosynth"
	"github.com/pfcm/picosynth/fix"
	synthio "github.com/pfcm/picosynth/io"
	"github.com/pfcm/picosynth/sinetab"
)

// ErrInvalid is returned, wrapped, by Validate.
var ErrInvalid = errors.New("invalid config")

// Trigger policies.
const (
	TriggerOnce  = "once"
	TriggerIdle  = "idle"
	TriggerEvery = "every"
)

// EngineConfig is the rate the chain runs at and how much it makes at once.
type EngineConfig struct {
	SampleRate int `toml:"sample_rate"`
	Quantum    int `toml:"quantum"`
}

// VoiceConfig is the note the voice plays.
type VoiceConfig struct {
	Frequency      float64 `toml:"frequency"`
	AttackSamples  int     `toml:"attack_samples"`
	ReleaseSamples int     `toml:"release_samples"`
	Trigger        string  `toml:"trigger"`
	// TriggerInterval is a time.ParseDuration string, used by "every".
	TriggerInterval string `toml:"trigger_interval"`
}

// TableConfig says where the sine table comes from: the file at Path if
// set, otherwise one generated with the given amplitude.
type TableConfig struct {
	Path      string `toml:"path"`
	Amplitude int    `toml:"amplitude"`
}

// OutputConfig holds the sink settings.
type OutputConfig struct {
	Backend       string `toml:"backend"`
	Shift         int    `toml:"shift"`
	WAVPath       string `toml:"wav_path"`
	WAVSampleRate int    `toml:"wav_sample_rate"` // 0 means the engine rate
	WAVBitDepth   int    `toml:"wav_bit_depth"`
}

// Config is the top-level configuration.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Voice  VoiceConfig  `toml:"voice"`
	Table  TableConfig  `toml:"table"`
	Output OutputConfig `toml:"output"`
}

// Default returns a Config that plays a 500Hz ping over and over at 24kHz.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			SampleRate: 24000,
			Quantum:    1000,
		},
		Voice: VoiceConfig{
			Frequency:       500,
			AttackSamples:   20,
			ReleaseSamples:  10000,
			Trigger:         TriggerIdle,
			TriggerInterval: "1s",
		},
		Table: TableConfig{
			Amplitude: sinetab.Amplitude,
		},
		Output: OutputConfig{
			Backend:     "malgo",
			WAVPath:     "out.wav",
			WAVBitDepth: 16,
		},
	}
}

// Load reads the TOML config from path. If the file does not exist,
// it returns the default config without error. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%s: %w: unknown key %q", path, ErrInvalid, undec[0].String())
	}
	return cfg, nil
}

// Save writes the config as TOML to the given path, creating parent
// directories if needed. The data goes to a temporary file which is then
// renamed into place.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".picosynth-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every value, so that nothing fails once audio is
// running.
func (c *Config) Validate() error {
	e, v := c.Engine, c.Voice
	switch {
	case e.SampleRate <= 0:
		return invalid("engine.sample_rate %d", e.SampleRate)
	case e.Quantum <= 0:
		return invalid("engine.quantum %d", e.Quantum)
	case v.Frequency <= 0 || v.Frequency >= float64(e.SampleRate)/2:
		return invalid("voice.frequency %gHz outside (0, %d)", v.Frequency, e.SampleRate/2)
	case v.AttackSamples <= 0 || v.ReleaseSamples <= 0:
		return invalid("voice envelope %d/%d samples", v.AttackSamples, v.ReleaseSamples)
	}
	switch v.Trigger {
	case TriggerOnce, TriggerIdle:
	case TriggerEvery:
		if _, err := c.triggerInterval(); err != nil {
			return err
		}
	default:
		return invalid("voice.trigger %q", v.Trigger)
	}
	if c.Table.Path == "" && (c.Table.Amplitude <= 0 || c.Table.Amplitude > 32767) {
		return invalid("table.amplitude %d", c.Table.Amplitude)
	}
	o := c.Output
	if !slices.Contains(synthio.Backends(), o.Backend) {
		return invalid("output.backend %q", o.Backend)
	}
	if o.Shift < -16 || o.Shift > 16 {
		return invalid("output.shift %d", o.Shift)
	}
	if o.WAVSampleRate < 0 {
		return invalid("output.wav_sample_rate %d", o.WAVSampleRate)
	}
	switch o.WAVBitDepth {
	case 16, 24, 32:
	default:
		return invalid("output.wav_bit_depth %d", o.WAVBitDepth)
	}
	return nil
}

func (c *Config) triggerInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Voice.TriggerInterval)
	if err != nil {
		return 0, fmt.Errorf("%w: voice.trigger_interval: %w", ErrInvalid, err)
	}
	if d <= 0 {
		return 0, invalid("voice.trigger_interval %v", d)
	}
	return d, nil
}

// PhaseIncrement is the oscillator step for the configured frequency.
func (c *Config) PhaseIncrement() fix.Phase {
	return fix.PhaseIncrement(c.Voice.Frequency, float64(c.Engine.SampleRate))
}

// LoadTable loads or generates the sine table.
func (c *Config) LoadTable() (*sinetab.Table, error) {
	if c.Table.Path != "" {
		return sinetab.LoadFile(c.Table.Path)
	}
	return sinetab.Generate(int16(c.Table.Amplitude)), nil
}

// Trigger returns a fresh trigger for the configured policy.
func (c *Config) Trigger() (picosynth.Trigger, error) {
	switch c.Voice.Trigger {
	case TriggerOnce:
		return picosynth.Once(), nil
	case TriggerIdle:
		return picosynth.WhenIdle(), nil
	case TriggerEvery:
		d, err := c.triggerInterval()
		if err != nil {
			return nil, err
		}
		return picosynth.EveryDuration(d, float64(c.Engine.SampleRate), c.Engine.Quantum), nil
	}
	return nil, invalid("voice.trigger %q", c.Voice.Trigger)
}

// BuildVoice validates the config and builds the voice it describes, tuned
// to the configured frequency.
func (c *Config) BuildVoice() (*picosynth.Voice[int32], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	tab, err := c.LoadTable()
	if err != nil {
		return nil, err
	}
	trig, err := c.Trigger()
	if err != nil {
		return nil, err
	}
	v, err := picosynth.NewVoice[int32](picosynth.Params{
		Table:   tab,
		Quantum: c.Engine.Quantum,
		Attack:  c.Voice.AttackSamples,
		Release: c.Voice.ReleaseSamples,
		Trigger: trig,
	})
	if err != nil {
		return nil, err
	}
	v.SetPhaseIncrement(c.PhaseIncrement())
	return v, nil
}

// Format is the playback format.
func (c *Config) Format() synthio.Format {
	return synthio.Format{SampleRate: c.Engine.SampleRate, Shift: c.Output.Shift}
}

// WAVFormat is the rendering format.
func (c *Config) WAVFormat() synthio.WAVFormat {
	return synthio.WAVFormat{
		SampleRate: c.Engine.SampleRate,
		FileRate:   c.Output.WAVSampleRate,
		BitDepth:   c.Output.WAVBitDepth,
	}
}
