// Package shader is the GPU half of the renderer: a GLSL program that turns
// three single-channel Y, U and V textures into RGB, with the textures and
// vertex state it draws from.
package shader

import "errors"

// Attribute locations bound before linking.
const (
	attribPosition = 0
	attribTexCoord = 1
)

// ErrNotAvailable is returned when the package was built without cgo.
var ErrNotAvailable = errors.New("shader: OpenGL not available in this build")

// Uniform names of the three plane samplers, in texture unit order.
var samplerNames = [3]string{"texY", "texU", "texV"}

const vertexSource = `
#version 110
attribute vec4 position;
attribute vec2 texCoord;
varying vec2 vTexCoord;

void main(void)
{
	gl_Position = position;
	vTexCoord = texCoord;
}
`

// The matrix is column major: columns are the Y, U and V contributions. Keep
// the numbers in sync with the colorspace package.
const fragmentSource = `
#version 110
varying vec2 vTexCoord;
uniform sampler2D texY;
uniform sampler2D texU;
uniform sampler2D texV;

void main(void)
{
	vec3 yuv;
	yuv.x = texture2D(texY, vTexCoord).r;
	yuv.y = texture2D(texU, vTexCoord).r - 0.5;
	yuv.z = texture2D(texV, vTexCoord).r - 0.5;
	vec3 rgb = mat3(1.0,      1.0,      1.0,
	                0.0,     -0.39465,  2.03211,
	                1.13983, -0.58060,  0.0) * yuv;
	gl_FragColor = vec4(rgb, 1.0);
}
`

// Full screen quad as a triangle strip, and the texture coordinates that
// flip the image so row 0 of the frame ends up at the top of the window.
var (
	quadVertices = []float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}
	quadTexCoords = []float32{
		0, 1,
		1, 1,
		0, 0,
		1, 0,
	}
)
