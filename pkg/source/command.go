package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/shlex"
	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/pkg/frame"
)

var (
	errInvalidCommand = errors.New("source: invalid command")
	// ErrReadTimeout is returned by Command readers when no frame arrived in
	// time.
	ErrReadTimeout = errors.New("source: command read timeout")
)

const commandStopTimeout = 3 * time.Second

// Command runs a program that writes raw width x height I420 frames to its
// standard output, for example
//
//	ffmpeg -loglevel error -i input.mp4 -f rawvideo -pix_fmt yuv420p -s 1280x720 -
//
// The command line is split like a shell would, honouring quotes. Its
// standard error goes to the debug log. A non-positive timeout waits forever.
type Command struct {
	args    []string
	cmd     *exec.Cmd
	timeout time.Duration

	frames chan []byte
	free   chan []byte
	errs   chan error
	done   chan struct{}

	closeOnce sync.Once
	err       error
}

// StartCommand starts cmdline and begins reading frames from it.
func StartCommand(cmdline string, width, height int, timeout time.Duration) (*Command, error) {
	args, err := shlex.Split(cmdline)
	if err != nil {
		return nil, errors.Wrap(errInvalidCommand, err.Error())
	}
	if len(args) == 0 || args[0] == "" {
		return nil, errInvalidCommand
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("source: invalid frame size %dx%d", width, height)
	}

	c := &Command{
		args:    args,
		cmd:     exec.Command(args[0], args[1:]...),
		timeout: timeout,
		frames:  make(chan []byte),
		free:    make(chan []byte, 2),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	c.cmd.Env = append(os.Environ(),
		fmt.Sprintf("YUVGL_WIDTH=%d", width),
		fmt.Sprintf("YUVGL_HEIGHT=%d", height),
	)

	stderr, err := c.cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "source: command stderr")
	}
	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "source: command stdout")
	}
	if err := c.cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "source: failed to start %s", args[0])
	}
	logger.Infof("started %s (pid %d)", args[0], c.cmd.Process.Pid)

	size := frame.I420Size(width, height)
	for i := 0; i < cap(c.free); i++ {
		c.free <- make([]byte, size)
	}

	go c.logStderr(stderr)
	go c.pump(stdout)
	return c, nil
}

func (c *Command) logStderr(r io.Reader) {
	prefix := fmt.Sprintf("(%s stderr): ", c.args[0])
	s := bufio.NewScanner(r)
	for s.Scan() {
		logger.Debug(prefix + s.Text())
	}
	if err := s.Err(); err != nil {
		logger.Debugf("%s%v", prefix, err)
	}
}

// pump fills free buffers from r and hands them to Read.
func (c *Command) pump(r io.Reader) {
	for {
		var buf []byte
		select {
		case buf = <-c.free:
		case <-c.done:
			return
		}

		if _, err := io.ReadFull(r, buf); err != nil {
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}
			c.errs <- err
			close(c.frames)
			return
		}

		select {
		case c.frames <- buf:
		case <-c.done:
			return
		}
	}
}

// Read returns the next frame. The buffer stays valid until release is
// called.
func (c *Command) Read() ([]byte, func(), error) {
	var timeout <-chan time.Time
	if c.timeout > 0 {
		t := time.NewTimer(c.timeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case buf, ok := <-c.frames:
		if !ok {
			return nil, nil, c.readErr()
		}
		var once sync.Once
		release := func() {
			once.Do(func() { c.free <- buf })
		}
		return buf, release, nil
	case <-timeout:
		return nil, nil, ErrReadTimeout
	case <-c.done:
		return nil, nil, io.EOF
	}
}

func (c *Command) readErr() error {
	select {
	case err := <-c.errs:
		c.err = err
	default:
	}
	if c.err == nil {
		return io.EOF
	}
	return c.err
}

// Close interrupts the command and waits for it, killing it if it does not
// exit within a few seconds.
func (c *Command) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		if c.cmd.Process == nil {
			return
		}
		_ = c.cmd.Process.Signal(os.Interrupt)
		done := make(chan error, 1)
		go func() { done <- c.cmd.Wait() }()
		select {
		case err = <-done:
		case <-time.After(commandStopTimeout):
			logger.Warnf("%s did not exit, killing it", c.args[0])
			err = c.cmd.Process.Kill()
		}
	})
	return err
}
