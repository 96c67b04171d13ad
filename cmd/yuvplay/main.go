// Command yuvplay plays raw I420 video into an X11 window with OpenGL.
//
//	yuvplay [flags] <mode> <bgcolor>
//
// mode is 0 to fit the video inside the window keeping its aspect ratio, 1
// to stretch it over the whole window. bgcolor is a hexadecimal 0xRRGGBB
// colour used for the bars around a fitted video. Playback stops on Enter,
// SIGINT, SIGTERM or when the window is closed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/internal/logging"
	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/layout"
)

const defaultFile = "1280x720_20fps_I420.yuv"

var logger = logging.NewLogger("yuvplay")

type options struct {
	file       string
	width      int
	height     int
	fps        float64
	source     string
	display    int
	camera     string
	command    string
	backend    string
	snapshot   string
	maxDropped int

	mode       layout.Mode
	background colorspace.Color
}

func getEnv(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(getenv func(string) string, key string, def int) int {
	if v := getenv(key); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			return x
		}
	}
	return def
}

func getEnvFloat(getenv func(string) string, key string, def float64) float64 {
	if v := getenv(key); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			return x
		}
	}
	return def
}

// defaultFilePath is the sample clip next to the executable.
func defaultFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return defaultFile
	}
	return filepath.Join(filepath.Dir(exe), defaultFile)
}

func parseArgs(fs *flag.FlagSet, args []string, getenv func(string) string) (*options, error) {
	o := &options{}
	fs.StringVar(&o.file, "file", getEnv(getenv, "YUVPLAY_FILE", defaultFilePath()), "raw I420 file to loop (env YUVPLAY_FILE)")
	fs.IntVar(&o.width, "width", getEnvInt(getenv, "YUVPLAY_WIDTH", 1280), "frame width in pixels (env YUVPLAY_WIDTH)")
	fs.IntVar(&o.height, "height", getEnvInt(getenv, "YUVPLAY_HEIGHT", 720), "frame height in pixels (env YUVPLAY_HEIGHT)")
	fs.Float64Var(&o.fps, "fps", getEnvFloat(getenv, "YUVPLAY_FPS", 20), "playback rate, 0 for as fast as possible (env YUVPLAY_FPS)")
	fs.StringVar(&o.source, "source", getEnv(getenv, "YUVPLAY_SOURCE", "file"), "frame source: file, pattern, screen, camera or cmd (env YUVPLAY_SOURCE)")
	fs.IntVar(&o.display, "display", getEnvInt(getenv, "YUVPLAY_DISPLAY", 0), "display index captured by -source screen (env YUVPLAY_DISPLAY)")
	fs.StringVar(&o.camera, "camera", getEnv(getenv, "YUVPLAY_CAMERA", "/dev/video0"), "V4L2 device for -source camera (env YUVPLAY_CAMERA)")
	fs.StringVar(&o.command, "cmd", getEnv(getenv, "YUVPLAY_CMD", ""), "command writing raw I420 to stdout for -source cmd (env YUVPLAY_CMD)")
	fs.StringVar(&o.backend, "backend", getEnv(getenv, "YUVPLAY_BACKEND", "gl"), "renderer: gl or raster (env YUVPLAY_BACKEND)")
	fs.StringVar(&o.snapshot, "snapshot", getEnv(getenv, "YUVPLAY_SNAPSHOT", ""), "PNG written with the last raster frame on exit (env YUVPLAY_SNAPSHOT)")
	fs.IntVar(&o.maxDropped, "max-dropped", getEnvInt(getenv, "YUVPLAY_MAX_DROPPED", 0), "stop after this many dropped frames in a row, 0 never (env YUVPLAY_MAX_DROPPED)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] <mode> <bgcolor>\n\n", fs.Name())
		fmt.Fprintln(fs.Output(), "  mode     0 fit (keep aspect ratio), 1 full fill")
		fmt.Fprintln(fs.Output(), "  bgcolor  hexadecimal 0xRRGGBB")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, errors.New("expected <mode> and <bgcolor>")
	}

	var err error
	if o.mode, err = layout.ParseMode(fs.Arg(0)); err != nil {
		return nil, err
	}
	if o.background, err = colorspace.ParseColor(fs.Arg(1)); err != nil {
		return nil, err
	}
	switch o.backend {
	case "gl", "raster":
	default:
		return nil, errors.Errorf("unknown backend %q", o.backend)
	}
	if o.snapshot != "" && o.backend != "raster" {
		return nil, errors.New("-snapshot needs -backend raster")
	}
	return o, nil
}

// waitEnter calls cancel once a line is read from r.
func waitEnter(r io.Reader, cancel func()) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n == 1 && buf[0] == '\n' {
			cancel()
			return
		}
	}
}

func main() {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	o, err := parseArgs(fs, os.Args[1:], os.Getenv)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go waitEnter(os.Stdin, cancel)

	fmt.Println("Playing... Press Enter or Ctrl+c to stop")
	start := time.Now()
	stats, err := play(ctx, cancel, o)
	logger.Infof("rendered %d frames in %s, dropped %d, rebuilt the renderer %d times",
		stats.Rendered, time.Since(start).Round(time.Millisecond), stats.Dropped, stats.Rebuilds)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
