package graphics

import (
	"fmt"

	glpkg "github.com/tinyrange/learngl/internal/gowin/gl"
)

const (
	VertexShaderSource = `#version 330 core

layout (location = 0) in vec3 pos;
layout (location = 1) in vec3 color;
out vec3 frag_color;

void main() {
	gl_Position = vec4(pos.x, pos.y, pos.z, 1.0f);
	frag_color = color;
}
`

	FragmentShaderSource = `#version 330 core

in vec3 frag_color;
out vec4 final_color;

void main() {
	final_color = vec4(frag_color.xyz, 1.0f);
}
`
)

// ShaderError carries the compiler or linker log of a failed stage verbatim.
type ShaderError struct {
	// Stage is "vertex", "fragment" or "link".
	Stage string
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("program linking failed: %s", e.Log)
	}
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

func compileShader(gl GL, stage string, xtype uint32, source string) (uint32, error) {
	shader := gl.CreateShader(xtype)
	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, glpkg.CompileStatus, &status)
	if status == 0 {
		log := gl.GetShaderInfoLog(shader)
		gl.DeleteShader(shader)
		if log == "" {
			log = "no compiler log"
		}
		return 0, &ShaderError{Stage: stage, Log: log}
	}
	return shader, nil
}

// CompileProgram compiles both stages and links them into a program. Linking
// is not attempted when either stage fails to compile.
func CompileProgram(gl GL, vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(gl, "vertex", glpkg.VertexShader, vertexSrc)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(gl, "fragment", glpkg.FragmentShader, fragmentSrc)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Shaders can be deleted after linking
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, glpkg.LinkStatus, &status)
	if status == 0 {
		log := gl.GetProgramInfoLog(program)
		gl.DeleteProgram(program)
		if log == "" {
			log = "no linker log"
		}
		return 0, &ShaderError{Stage: "link", Log: log}
	}
	return program, nil
}
