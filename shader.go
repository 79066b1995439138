package pixwin

import (
	"fmt"
	"log/slog"
	"unsafe"
)

// quadVertexShader expands one instance into a triangle-strip quad.
// Corner UVs come from gl_VertexID; position is the top-left corner in
// centered-origin window space and the Y axis is flipped so image row 0
// is drawn at the top.
const quadVertexShader = `
#version 410 core
uniform vec2 resolution;
layout (location = 0) in vec2 position;
layout (location = 1) in vec2 size;

out vec2 uv;

vec2 cameraProject(vec2 point) {
    return 2.0 * point / resolution;
}

void main() {
    vec2 corner = vec2(float(gl_VertexID & 1), float((gl_VertexID >> 1) & 1));
    uv = corner;
    vec2 r = cameraProject(corner * size + position);
    r.y *= -1.0;
    gl_Position = vec4(r, 0.0, 1.0);
}
` + "\x00"

const quadFragmentShader = `
#version 410 core
uniform sampler2D img;
in vec2 uv;
out vec4 color;

void main() {
    color = texture(img, uv);
}
` + "\x00"

// quadAttribs lays position and size out as two per-instance vec2 attributes.
var quadAttribs = []VertexAttrib{
	{
		Location:   0,
		Components: 2,
		Stride:     int32(unsafe.Sizeof(QuadInstance{})),
		Offset:     unsafe.Offsetof(QuadInstance{}.Position),
		Divisor:    1,
	},
	{
		Location:   1,
		Components: 2,
		Stride:     int32(unsafe.Sizeof(QuadInstance{})),
		Offset:     unsafe.Offsetof(QuadInstance{}.Size),
		Divisor:    1,
	},
}

// QuadProgram draws one textured quad per frame.
// Each window owns one; GL programs are not shared between contexts.
type QuadProgram struct {
	program  uint32
	vertex   uint32
	fragment uint32
	vao, vbo uint32
}

// NewQuadProgram compiles and links the quad shaders and creates the
// instance buffer. Compile failures are logged with the offending source and
// linking still proceeds; a link failure is returned as ErrShaderLink and
// every object created so far is released.
func NewQuadProgram(dev Device, logger *slog.Logger) (*QuadProgram, error) {
	p := &QuadProgram{}
	p.vao, p.vbo = dev.NewInstanceBuffer(int(unsafe.Sizeof(QuadInstance{})), quadAttribs)

	p.vertex = compileLogged(dev, logger, StageVertex, quadVertexShader)
	p.fragment = compileLogged(dev, logger, StageFragment, quadFragmentShader)

	program, err := dev.LinkProgram(p.vertex, p.fragment)
	if err != nil {
		dev.DeleteShader(p.vertex)
		dev.DeleteShader(p.fragment)
		dev.DeleteInstanceBuffer(p.vao, p.vbo)
		return nil, fmt.Errorf("%w: %v", ErrShaderLink, err)
	}
	p.program = program
	return p, nil
}

func compileLogged(dev Device, logger *slog.Logger, stage ShaderStage, source string) uint32 {
	id, err := dev.CompileShader(stage, source)
	if err != nil {
		logger.Error("shader compile failed",
			"stage", stage.String(),
			"err", err,
			"source", source)
	}
	return id
}

// Program returns the linked program handle.
func (p *QuadProgram) Program() uint32 { return p.program }

// SetResolution sets the framebuffer size the vertex shader projects into.
func (p *QuadProgram) SetResolution(dev Device, width, height int) {
	dev.Uniform2f(p.program, "resolution", float32(width), float32(height))
}

// Draw renders tex into the rectangle described by inst.
func (p *QuadProgram) Draw(dev Device, tex *Texture, inst QuadInstance) {
	if !tex.Allocated() {
		return
	}
	dev.DrawQuad(p.program, p.vao, p.vbo, tex.ID(), inst)
}

// Delete releases the program, its shaders and the instance buffer.
func (p *QuadProgram) Delete(dev Device) {
	if p.program != 0 {
		dev.DeleteProgram(p.program)
	}
	if p.vertex != 0 {
		dev.DeleteShader(p.vertex)
	}
	if p.fragment != 0 {
		dev.DeleteShader(p.fragment)
	}
	dev.DeleteInstanceBuffer(p.vao, p.vbo)
	*p = QuadProgram{}
}
