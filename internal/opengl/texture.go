package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"juliette/scene"
)

// UploadTexture uploads an RGBA8 texture with mipmaps and sets its GLID.
func UploadTexture(tex *scene.Texture) error {
	if len(tex.Pixels) < tex.Width*tex.Height*4 || tex.Width == 0 {
		return fmt.Errorf("texture %q: pixel data does not cover %dx%d", tex.Name, tex.Width, tex.Height)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(tex.Width), int32(tex.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	tex.GLID = id
	return nil
}

// BindTexture binds tex to unit 0, or unbinds when tex is not uploaded.
func BindTexture(tex *scene.Texture) bool {
	gl.ActiveTexture(gl.TEXTURE0)
	if tex == nil || tex.GLID == 0 {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return false
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
	return true
}

// DeleteTexture frees a previously uploaded GPU texture and zeroes its GLID.
func DeleteTexture(tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		return
	}
	gl.DeleteTextures(1, &tex.GLID)
	tex.GLID = 0
}
