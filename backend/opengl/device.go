// Package opengl provides the GLFW + OpenGL 4.1 backend for pixwin.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/pixwin"
)

// Device implements pixwin.Device with OpenGL calls against the current context.
type Device struct{}

var _ pixwin.Device = (*Device)(nil)

// textureFormats returns the internal and upload formats for a pixel format.
func textureFormats(format pixwin.PixelFormat) (internal int32, upload uint32) {
	switch format {
	case pixwin.FormatRGB:
		return gl.RGB8, gl.RGB
	case pixwin.FormatBGRA:
		return gl.RGBA8, gl.BGRA
	default:
		return gl.RGBA8, gl.RGBA
	}
}

func (d *Device) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

// UploadTexture re-declares the texture storage and uploads the full buffer.
func (d *Device) UploadTexture(id uint32, format pixwin.PixelFormat, width, height int, pixels []byte) {
	internal, upload := textureFormats(format)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// Rows of arbitrary width are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, upload, gl.UNSIGNED_BYTE, nil)
	if len(pixels) == 0 {
		return
	}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), upload, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

// CompileShader compiles one stage. On failure the shader handle is still
// returned alongside the info log.
func (d *Device) CompileShader(stage pixwin.ShaderStage, source string) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == pixwin.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		return shader, fmt.Errorf("%s shader compilation failed: %s", stage, string(log))
	}
	return shader, nil
}

// LinkProgram links the shaders and checks the link status.
func (d *Device) LinkProgram(vertex, fragment uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}
	return program, nil
}

func (d *Device) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (d *Device) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

// NewInstanceBuffer creates a VAO and a dynamic VBO of size bytes with
// per-instance float attributes.
func (d *Device) NewInstanceBuffer(size int, attribs []pixwin.VertexAttrib) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)

	for _, a := range attribs {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, a.Stride, a.Offset)
		gl.VertexAttribDivisor(a.Location, a.Divisor)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

func (d *Device) DeleteInstanceBuffer(vao, vbo uint32) {
	if vbo != 0 {
		gl.DeleteBuffers(1, &vbo)
	}
	if vao != 0 {
		gl.DeleteVertexArrays(1, &vao)
	}
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(c pixwin.Color) {
	r, g, b, a := c.Normalized()
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) Uniform2f(program uint32, name string, x, y float32) {
	gl.UseProgram(program)
	gl.Uniform2f(gl.GetUniformLocation(program, gl.Str(name+"\x00")), x, y)
}

// DrawQuad uploads the instance data and draws a 4-vertex triangle strip.
func (d *Device) DrawQuad(program, vao, vbo, texture uint32, inst pixwin.QuadInstance) {
	// Blend state is per context, so set it on every draw.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(program)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, int(unsafe.Sizeof(inst)), unsafe.Pointer(&inst))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("img\x00")), 0)

	gl.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, 4, 1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
func (d *Device) ReadPixels(width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	pix := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return pix
}
