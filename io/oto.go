package io

import (
	"context"
	"time"

	"github.com/ebitengine/oto/v3"
)

// PlayOto plays src on the default output device through oto. oto allows
// one context per process, so PlayOto can only be called once.
func PlayOto(ctx context.Context, src Source, f Format) error {
	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return err
	}
	<-ready

	p := octx.NewPlayer(stream(src, f.Shift))
	p.Play()

	<-ctx.Done()
	return p.Close()
}
