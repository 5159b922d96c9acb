// Package gpu prepares compiled macros for drawing with a WebGPU HAL
// device.
//
// The CPU side encodes each vertex batch as a triangle list
// ([EncodeBatch]) with a small uniform block carrying the batch transform
// and viewport ([EncodeUniforms]). [Pipelines] holds one render pipeline
// per alpha mode, and an [Uploader] turns a macro into GPU-resident
// buffers that can be re-targeted at any destination without re-uploading
// vertices:
//
//	p := gpu.NewPipelines(device, gputypes.TextureFormatBGRA8Unorm)
//	defer p.Destroy()
//
//	res, err := gpu.NewUploader(device, queue, p).Upload(m)
//	if err != nil {
//	    return err
//	}
//	defer res.Destroy()
//
//	res.SetDestination(macro.Translate(10, 10), 800, 600)
//	res.Draw(pass)
//
// Batch textures are uploaded once per resident macro and sampled in the
// fragment shader, tinted by the vertex colors. Untextured batches sample a
// 1x1 white texture. The shader module is created from SPIR-V compiled by
// naga ([ShaderSPIRV]).
package gpu
