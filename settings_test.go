package gm65d

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mdouchement/gm65d/gm65"
	"github.com/mdouchement/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Logger {
	return logger.WrapSlogHandler(logger.NewSlogTextHandler(io.Discard, &logger.SlogTextOption{
		Level: slog.LevelDebug,
	}))
}

// recorder records the calls made on a Configurer.
type recorder struct {
	calls []string
	fail  string
}

func (r *recorder) record(name string) error {
	r.calls = append(r.calls, name)
	if name == r.fail {
		return errors.New(name + ": boom")
	}
	return nil
}

func (r *recorder) SetupPrefixSuffix(byte) error { return r.record("mode") }
func (r *recorder) UpdatePrefix([]byte) error { return r.record("prefix") }
func (r *recorder) UpdateSuffix([]byte) error { return r.record("suffix") }
func (r *recorder) SetScanDuration(time.Duration) error { return r.record("duration") }
func (r *recorder) SetSoundLevel(byte) error { return r.record("sound") }
func (r *recorder) SaveConfiguration() error { return r.record("save") }
func (r *recorder) ReadPrefix() ([]byte, error) { return nil, r.record("read_prefix") }
func (r *recorder) ReadSuffix() ([]byte, error) { return nil, r.record("read_suffix") }

func TestApply(t *testing.T) {
	s := Settings{
		ScanDuration: &Duration{5 * time.Second},
		SoundLevel:   ToPtr[uint8](2),
		PrefixSuffix: ToPtr[uint8](43),
		Prefix:       ToPtr("!!S#"),
		Suffix:       ToPtr("#F!!"),
		Save:         true,
	}

	r := &recorder{}
	require.NoError(t, Apply(s, r, testLogger()))
	assert.Equal(t, []string{"mode", "prefix", "suffix", "duration", "sound", "save"}, r.calls)
}

func TestApply_Partial(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Apply(Settings{SoundLevel: ToPtr[uint8](0)}, r, testLogger()))
	assert.Equal(t, []string{"sound"}, r.calls)

	r = &recorder{}
	require.NoError(t, Apply(Settings{}, r, testLogger()))
	assert.Empty(t, r.calls)
}

func TestApply_StopsOnError(t *testing.T) {
	s := Settings{
		Prefix:     ToPtr("!!"),
		SoundLevel: ToPtr[uint8](1),
		Save:       true,
	}

	r := &recorder{fail: "prefix"}
	err := Apply(s, r, testLogger())
	assert.EqualError(t, err, "prefix: boom")
	assert.Equal(t, []string{"prefix"}, r.calls)
}

func TestApply_Dummy(t *testing.T) {
	dev := NewDummyGM65Controller()
	s := Settings{
		Prefix: ToPtr("<"),
		Suffix: ToPtr(">"),
	}
	require.NoError(t, Apply(s, dev, testLogger()))

	prefix, err := dev.ReadPrefix()
	require.NoError(t, err)
	assert.Equal(t, []byte("<"), prefix)

	var code []byte
	for i := 0; i < 3; i++ {
		code, err = dev.ScanNow(context.Background())
	}
	require.NoError(t, err)
	assert.Equal(t, "<4006381333948>", string(code))

	err = dev.SetScanDuration(time.Minute)
	assert.ErrorIs(t, err, gm65.ErrInvalidDuration)
}

func TestEAN13CheckDigit(t *testing.T) {
	assert.Equal(t, uint64(1), ean13CheckDigit(400638133393))
	assert.Equal(t, uint64(8), ean13CheckDigit(400638133394))
	assert.Equal(t, uint64(0), ean13CheckDigit(0))
}
