package gfx

import (
	_ "embed"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/naga"
)

//go:embed shaders/triangle.wgsl
var triangleShaderSource string

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"

	spirvMagic = 0x07230203
)

// compileShader turns WGSL source into SPIR-V words ready for a shader
// module.
func compileShader(source string) ([]uint32, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, errors.Wrap(err, "compile WGSL")
	}
	if len(spirv)%4 != 0 {
		return nil, errors.Newf("SPIR-V length %d is not a multiple of 4", len(spirv))
	}

	code := bytesToBytecode(spirv)
	if len(code) == 0 || code[0] != spirvMagic {
		return nil, errors.New("compiled shader is not SPIR-V")
	}
	return code, nil
}

// bytesToBytecode reads little-endian 32-bit words.
func bytesToBytecode(b []byte) []uint32 {
	byteCode := make([]uint32, len(b)/4)
	for i := 0; i < len(byteCode); i++ {
		byteIndex := i * 4
		byteCode[i] = 0
		byteCode[i] |= uint32(b[byteIndex])
		byteCode[i] |= uint32(b[byteIndex+1]) << 8
		byteCode[i] |= uint32(b[byteIndex+2]) << 16
		byteCode[i] |= uint32(b[byteIndex+3]) << 24
	}

	return byteCode
}
