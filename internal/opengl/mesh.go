package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"juliette/core"
	"juliette/math"
	"juliette/scene"
)

// Instance model matrices occupy attribute locations 4-7, one column each.
const instanceAttrib = 4

// GPUMesh holds the OpenGL buffer objects for an uploaded model.
type GPUMesh struct {
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IndexCount  int32
	InstanceVBO uint32
	InstanceCap int
}

// MeshCache uploads models on first use and owns their buffers.
type MeshCache struct {
	meshes map[*scene.Model]*GPUMesh
}

func NewMeshCache() *MeshCache {
	return &MeshCache{meshes: make(map[*scene.Model]*GPUMesh)}
}

// Get returns the GPU buffers for model, uploading them if needed. It
// returns nil for an empty model.
func (c *MeshCache) Get(model *scene.Model) *GPUMesh {
	if gpu, ok := c.meshes[model]; ok {
		return gpu
	}
	if len(model.Vertices) == 0 || len(model.Indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{IndexCount: int32(len(model.Indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.Vertices)*int(stride), gl.Ptr(model.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Color))))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Indices)*4, gl.Ptr(model.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	if tex := model.Material.Texture; tex != nil && tex.GLID == 0 {
		if err := UploadTexture(tex); err != nil {
			logger.Warningf("model %q: %v", model.Name, err)
		}
	}

	c.meshes[model] = gpu
	model.GPUData = gpu
	logger.Debugf("uploaded model %q (%d vertices, %d indices)", model.Name, len(model.Vertices), len(model.Indices))
	return gpu
}

// DrawInstanced draws gpu once per model matrix in a single call.
func DrawInstanced(gpu *GPUMesh, instances []math.Mat4) {
	if len(instances) == 0 {
		return
	}
	uploadInstances(gpu, instances)

	gl.BindVertexArray(gpu.VAO)
	gl.DrawElementsInstanced(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil, int32(len(instances)))
	gl.BindVertexArray(0)
}

// uploadInstances streams model matrices into the per-mesh instance VBO,
// wiring the attribute divisors on first use.
func uploadInstances(gpu *GPUMesh, instances []math.Mat4) {
	const stride = int32(16 * 4)

	if gpu.InstanceVBO == 0 {
		gl.GenBuffers(1, &gpu.InstanceVBO)
		gl.BindVertexArray(gpu.VAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, gpu.InstanceVBO)
		for i := uint32(0); i < 4; i++ {
			gl.EnableVertexAttribArray(instanceAttrib + i)
			gl.VertexAttribPointer(instanceAttrib+i, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(i)*16))
			gl.VertexAttribDivisor(instanceAttrib+i, 1)
		}
		gl.BindVertexArray(0)
	}

	byteSize := len(instances) * int(stride)
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.InstanceVBO)
	if len(instances) > gpu.InstanceCap {
		gl.BufferData(gl.ARRAY_BUFFER, byteSize, gl.Ptr(instances), gl.DYNAMIC_DRAW)
		gpu.InstanceCap = len(instances)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, byteSize, gl.Ptr(instances))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Release frees the GPU buffers of every cached model.
func (c *MeshCache) Release() {
	for model, gpu := range c.meshes {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		if gpu.InstanceVBO != 0 {
			gl.DeleteBuffers(1, &gpu.InstanceVBO)
		}
		DeleteTexture(model.Material.Texture)
		model.GPUData = nil
		delete(c.meshes, model)
	}
}
