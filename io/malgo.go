package io

import (
	"context"
	"fmt"
	"os"

	"github.com/gen2brain/malgo"
)

// PlayMalgo plays src on the default output device through miniaudio. It
// blocks until the provided context is cancelled.
func PlayMalgo(ctx context.Context, src Source, f Format) error {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		fmt.Fprint(os.Stderr, msg)
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()
	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = 1
	cfg.SampleRate = uint32(f.SampleRate)

	q := stream(src, f.Shift)
	recv := func(out, _ []byte, framecount uint32) {
		if framecount == 0 {
			return
		}
		q.Read(out[:2*framecount])
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: recv,
	})
	if err != nil {
		return err
	}
	defer device.Uninit()
	if err := device.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}
