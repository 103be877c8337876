package opengl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/platform"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

var ErrNoWindow = errors.New("opengl backend needs a window")

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPosition;

uniform mat4 uMVP;

void main() {
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
` + "\x00"

const fragmentShaderSource = `#version 410 core
uniform vec4 uColor;

out vec4 FragColor;

void main() {
    FragColor = uColor;
}
` + "\x00"

// Config describes the colors of the OpenGL backend.
type Config struct {
	// SnapshotPath is where the last frame is written as a PNG on shutdown.
	// Empty writes nothing.
	SnapshotPath string
	Background   [4]float32
	Wire         [4]float32
}

func DefaultConfig() Config {
	return Config{
		Background: [4]float32{0.0, 0.0, 0.2, 1.0},
		Wire:       [4]float32{0.9, 0.9, 0.9, 1.0},
	}
}

// An edge list uploaded to the GPU.
type lineMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

/**
 * @brief Draws the edges of every object as GL_LINES in the platform window.
 * The MVP matrix of each object is uploaded as-is; the packet is row-major so
 * the uniform is transposed on upload.
 */
type Backend struct {
	config   Config
	platform *platform.Platform

	program       uint32
	mvpLocation   int32
	colorLocation int32

	meshes map[uuid.UUID]*lineMesh
	width  int32
	height int32

	// The last finished frame, bottom row first, kept only with a SnapshotPath.
	lastFrame  []byte
	lastWidth  int32
	lastHeight int32
	readPixels func(width, height int32, dst []byte)
}

var _ renderer.RendererBackend = (*Backend)(nil)

func New(config Config, p *platform.Platform) *Backend {
	return &Backend{
		config:     config,
		platform:   p,
		meshes:     make(map[uuid.UUID]*lineMesh),
		readPixels: readBackBuffer,
	}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	if b.platform == nil || b.platform.Window == nil {
		return ErrNoWindow
	}
	b.platform.Window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	core.LogInfo("OpenGL %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	program, err := createProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	b.program = program
	b.mvpLocation = gl.GetUniformLocation(program, gl.Str("uMVP\x00"))
	b.colorLocation = gl.GetUniformLocation(program, gl.Str("uColor\x00"))

	width, height := b.platform.FramebufferSize()
	b.width, b.height = int32(width), int32(height)
	gl.Viewport(0, 0, b.width, b.height)
	c := b.config.Background
	gl.ClearColor(c[0], c[1], c[2], c[3])

	core.LogInfo("OpenGL renderer initialized for '%s'.", appName)
	return nil
}

func (b *Backend) Shutdown() error {
	var err error
	if b.config.SnapshotPath != "" && b.lastFrame != nil {
		err = b.snapshot(b.config.SnapshotPath)
	}
	for id, mesh := range b.meshes {
		deleteMesh(mesh)
		delete(b.meshes, id)
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
	return err
}

func (b *Backend) Resized(width, height uint16) error {
	if width == 0 || height == 0 {
		return nil
	}
	b.width, b.height = int32(width), int32(height)
	gl.Viewport(0, 0, b.width, b.height)
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (b *Backend) DrawFrame(packet *metadata.RenderPacket) error {
	gl.UseProgram(b.program)
	c := b.config.Wire
	gl.Uniform4f(b.colorLocation, c[0], c[1], c[2], c[3])

	used := make(map[uuid.UUID]struct{}, len(packet.Objects))
	for i := range packet.Objects {
		obj := &packet.Objects[i]
		if obj.Geometry == nil {
			continue
		}
		mesh, ok := b.meshes[obj.Geometry.ID]
		if !ok {
			mesh = uploadMesh(obj.Geometry)
			b.meshes[obj.Geometry.ID] = mesh
		}
		used[obj.Geometry.ID] = struct{}{}

		gl.UniformMatrix4fv(b.mvpLocation, 1, true, &obj.MVP[0])
		gl.BindVertexArray(mesh.vao)
		gl.DrawElements(gl.LINES, mesh.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)

	// Geometries that left the scene.
	for id, mesh := range b.meshes {
		if _, ok := used[id]; !ok {
			deleteMesh(mesh)
			delete(b.meshes, id)
		}
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x while drawing frame %d", code, packet.FrameNumber)
	}
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	// The back buffer is undefined once swapped.
	if b.config.SnapshotPath != "" && b.width > 0 && b.height > 0 {
		b.captureFrame()
	}
	b.platform.Window.SwapBuffers()
	return nil
}

func (b *Backend) captureFrame() {
	size := int(b.width) * int(b.height) * 4
	if cap(b.lastFrame) < size {
		b.lastFrame = make([]byte, size)
	}
	b.lastFrame = b.lastFrame[:size]
	b.readPixels(b.width, b.height, b.lastFrame)
	b.lastWidth, b.lastHeight = b.width, b.height
}

func readBackBuffer(width, height int32, dst []byte) {
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}

func (b *Backend) snapshot(path string) error {
	img, err := renderer.ImageFromPixels(b.lastFrame, int(b.lastWidth), int(b.lastHeight))
	if err != nil {
		return err
	}
	return renderer.WriteSnapshot(path, img)
}

func uploadMesh(geometry *metadata.Geometry) *lineMesh {
	vertices := make([]float32, 0, len(geometry.Vertices)*3)
	for _, v := range geometry.Vertices {
		vertices = append(vertices, v.X, v.Y, v.Z)
	}
	edges := geometry.Edges()
	indices := make([]uint32, 0, len(edges)*2)
	for _, e := range edges {
		indices = append(indices, e[0], e[1])
	}

	mesh := &lineMesh{indexCount: int32(len(indices))}
	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	gl.GenBuffers(1, &mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mesh.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return mesh
}

func deleteMesh(mesh *lineMesh) {
	gl.DeleteVertexArrays(1, &mesh.vao)
	gl.DeleteBuffers(1, &mesh.vbo)
	gl.DeleteBuffers(1, &mesh.ebo)
}

func createProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("linking program: %s", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
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
		return 0, fmt.Errorf("compiling: %s", log)
	}
	return shader, nil
}
