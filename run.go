package main

import (
	"os"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"nescore/emu"
	"nescore/hw"
)

// runMain runs the emulator with the given rom, either headless or in a
// small SDL shell (window, audio queue, keyboard input).
func runMain(args Run) {
	data, err := os.ReadFile(args.RomPath)
	checkf(err, "error reading ROM")

	cfg, err := emu.LoadConfig(args.Config)
	checkf(err, "error loading config")

	nes := emu.New()
	nes.SetAudioSampleRate(float64(cfg.Audio.SampleRate))
	checkf(nes.LoadROM(data), "failed to start emulator")

	if args.Trace != nil {
		nes.CPU.SetTraceOutput(args.Trace)
		defer args.Trace.Close()
	}

	if args.Headless {
		frames := args.Frames
		if frames == 0 {
			frames = 60
		}
		for i := 0; i < frames; i++ {
			nes.RunFrame()
		}
		return
	}

	var exitcode int
	sdl.Main(func() {
		if err := runShell(nes, args, cfg); err != nil {
			fatalf("shell error: %v", err)
		}
	})
	os.Exit(exitcode)
}

// shell is the SDL presentation layer around the core: it blits the frame
// buffer into a streaming texture, queues the frame's audio samples and
// feeds key events into the pads.
type shell struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	audio    sdl.AudioDeviceID

	keymap map[sdl.Keycode]hw.Button

	samples []float32
}

func runShell(nes *emu.NES, args Run, cfg emu.Config) error {
	var sh shell
	var err error

	sdl.Do(func() {
		err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS)
	})
	if err != nil {
		return err
	}
	defer sdl.Do(sdl.Quit)

	scale := max(int32(cfg.Video.Scale), 1)
	sdl.Do(func() {
		sh.window, err = sdl.CreateWindow("nescore",
			sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
			hw.ScreenWidth*scale, hw.ScreenHeight*scale,
			sdl.WINDOW_SHOWN)
	})
	if err != nil {
		return err
	}
	defer sdl.Do(func() { sh.window.Destroy() })

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if !cfg.Video.DisableVSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	sdl.Do(func() {
		sh.renderer, err = sdl.CreateRenderer(sh.window, -1, flags)
	})
	if err != nil {
		return err
	}
	defer sdl.Do(func() { sh.renderer.Destroy() })

	sdl.Do(func() {
		sh.texture, err = sh.renderer.CreateTexture(
			sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING,
			hw.ScreenWidth, hw.ScreenHeight)
	})
	if err != nil {
		return err
	}
	defer sdl.Do(func() { sh.texture.Destroy() })

	want := sdl.AudioSpec{
		Freq:     int32(cfg.Audio.SampleRate),
		Format:   sdl.AUDIO_F32SYS,
		Channels: 1,
		Samples:  1024,
	}
	sdl.Do(func() {
		sh.audio, err = sdl.OpenAudioDevice("", false, &want, nil, 0)
	})
	if err != nil {
		return err
	}
	defer sdl.Do(func() { sdl.CloseAudioDevice(sh.audio) })
	sdl.Do(func() { sdl.PauseAudioDevice(sh.audio, false) })

	sh.keymap = keymapFromConfig(cfg.Input)
	sh.samples = make([]float32, cfg.Audio.SampleRate/60+1)

	frames := 0
	for {
		quit := false
		sdl.Do(func() { quit = sh.pollInput(nes) })
		if quit {
			return nil
		}

		nes.RunFrame()

		if n := nes.ReadAudio(sh.samples); n > 0 {
			buf := unsafe.Slice((*byte)(unsafe.Pointer(&sh.samples[0])), n*4)
			sdl.Do(func() { sdl.QueueAudio(sh.audio, buf) })
		}

		sdl.Do(func() {
			sh.texture.UpdateRGBA(nil, nes.FrameBuffer(), hw.ScreenWidth)
			sh.renderer.Clear()
			sh.renderer.Copy(sh.texture, nil, nil)
			sh.renderer.Present()
		})

		frames++
		if args.Frames > 0 && frames >= args.Frames {
			return nil
		}
	}
}

// pollInput drains the SDL event queue into the pads. Returns true on a
// quit request.
func (sh *shell) pollInput(nes *emu.NES) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				return true
			}
			if btn, ok := sh.keymap[ev.Keysym.Sym]; ok {
				nes.Controller(1).SetButton(btn, ev.Type == sdl.KEYDOWN)
			}
		}
	}
	return false
}

func keymapFromConfig(in emu.InputConfig) map[sdl.Keycode]hw.Button {
	m := make(map[sdl.Keycode]hw.Button, 8)
	bind := func(name string, btn hw.Button) {
		if code := sdl.GetKeyFromName(name); code != sdl.K_UNKNOWN {
			m[code] = btn
		}
	}
	bind(in.A, hw.BtnA)
	bind(in.B, hw.BtnB)
	bind(in.Select, hw.BtnSelect)
	bind(in.Start, hw.BtnStart)
	bind(in.Up, hw.BtnUp)
	bind(in.Down, hw.BtnDown)
	bind(in.Left, hw.BtnLeft)
	bind(in.Right, hw.BtnRight)
	return m
}
