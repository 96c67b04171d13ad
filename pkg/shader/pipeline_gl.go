//go:build cgo

package shader

import (
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"

	"github.com/yuvgl/yuvgl/internal/logging"
	"github.com/yuvgl/yuvgl/pkg/colorspace"
	"github.com/yuvgl/yuvgl/pkg/frame"
	"github.com/yuvgl/yuvgl/pkg/layout"
)

var logger = logging.NewLogger("yuvgl/shader")

// Pipeline owns the YUV to RGB program, its vertex buffers and the three
// plane textures. It must only be used while the GL context it was built in
// is current on the calling thread.
type Pipeline struct {
	program  uint32
	vertex   uint32
	fragment uint32
	buffers  [2]uint32
	textures [3]uint32
	samplers [3]int32
	released bool
}

// Build compiles and links the program and allocates the vertex buffers and
// textures in the current context. On failure everything created so far is
// deleted.
func Build() (*Pipeline, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "shader: failed to load GL functions")
	}

	p := &Pipeline{}
	if err := p.build(); err != nil {
		p.Release()
		return nil, err
	}
	logger.Debugf("built pipeline, program %d", p.program)
	return p, nil
}

func (p *Pipeline) build() error {
	var err error
	if p.vertex, err = compile(gl.VERTEX_SHADER, vertexSource); err != nil {
		return errors.Wrap(err, "vertex shader")
	}
	if p.fragment, err = compile(gl.FRAGMENT_SHADER, fragmentSource); err != nil {
		return errors.Wrap(err, "fragment shader")
	}

	p.program = gl.CreateProgram()
	gl.AttachShader(p.program, p.vertex)
	gl.AttachShader(p.program, p.fragment)
	gl.BindAttribLocation(p.program, attribPosition, gl.Str("position\x00"))
	gl.BindAttribLocation(p.program, attribTexCoord, gl.Str("texCoord\x00"))
	gl.LinkProgram(p.program)

	var status int32
	gl.GetProgramiv(p.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return errors.Errorf("shader: failed to link program: %s", programLog(p.program))
	}
	gl.UseProgram(p.program)

	for i, name := range samplerNames {
		p.samplers[i] = gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	}

	gl.GenBuffers(int32(len(p.buffers)), &p.buffers[0])
	for i, data := range [][]float32{quadVertices, quadTexCoords} {
		index := uint32(attribPosition)
		if i == 1 {
			index = attribTexCoord
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, p.buffers[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.VertexAttribPointer(index, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(index)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenTextures(int32(len(p.textures)), &p.textures[0])
	for _, tex := range p.textures {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("shader: GL error 0x%x while building pipeline", code)
	}
	return nil
}

func compile(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, errors.Errorf("shader: failed to compile: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func programLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

// SetViewport sets the destination rectangle of subsequent draws.
func (p *Pipeline) SetViewport(r layout.Rect) {
	gl.Viewport(int32(r.X), int32(r.Y), int32(r.W), int32(r.H))
}

// UploadAndDraw clears the window to bg, uploads the three planes and draws
// them through the program. Presentation is single buffered: the draw is
// flushed, never swapped.
func (p *Pipeline) UploadAndDraw(planes frame.Planes, bg colorspace.Color) {
	if p.released {
		return
	}
	r, g, b := bg.RGB()
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	// Planes are tightly packed.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	data := [3][]byte{planes.Y, planes.U, planes.V}
	for i, tex := range p.textures {
		w, h := planes.Width, planes.Height
		if i > 0 {
			w, h = planes.ChromaWidth(), planes.ChromaHeight()
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.LUMINANCE, int32(w), int32(h), 0,
			gl.LUMINANCE, gl.UNSIGNED_BYTE, gl.Ptr(data[i]))
		gl.Uniform1i(p.samplers[i], int32(i))
	}

	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.Flush()
}

// Release deletes every GL object the pipeline owns. It is safe to call
// more than once and on a partially built pipeline.
func (p *Pipeline) Release() {
	if p.released {
		return
	}
	p.released = true

	gl.DeleteTextures(int32(len(p.textures)), &p.textures[0])
	gl.DisableVertexAttribArray(attribPosition)
	gl.DisableVertexAttribArray(attribTexCoord)
	gl.DeleteBuffers(int32(len(p.buffers)), &p.buffers[0])

	gl.UseProgram(0)
	if p.program != 0 {
		if p.vertex != 0 {
			gl.DetachShader(p.program, p.vertex)
		}
		if p.fragment != 0 {
			gl.DetachShader(p.program, p.fragment)
		}
		gl.DeleteProgram(p.program)
	}
	gl.DeleteShader(p.vertex)
	gl.DeleteShader(p.fragment)
	logger.Debugf("released pipeline, program %d", p.program)
}
