// Package gpucore provides the buffer abstraction shared by glemu's
// emulated GL contexts.
//
// This package defines the [BufferAdapter] interface, which abstracts over
// WebGPU-style device APIs, allowing the same GL emulation to run on:
//   - gogpu/wgpu (Pure Go WebGPU via HAL), see backend/native
//   - any other device that creates fixed-size buffers and writes them
//     through a queue
//
// # Architecture
//
// GL buffer objects are resizable and named by small integers. WebGPU
// buffers are fixed-size and addressed by opaque objects. The emulated
// context (backend/emulated) keeps the GL view and translates it to
// [BufferAdapter] calls; thin adapters translate those to a device API.
//
//	+-------------------+
//	|  glemu.IndexArray |
//	+---------+---------+
//	          | glemu.GL20
//	+---------v---------+
//	| backend/emulated  |
//	+---------+---------+
//	          | gpucore.BufferAdapter
//	+---------v---------+
//	|  backend/native   |
//	|   (hal.Device)    |
//	+-------------------+
//
// # Resource Management
//
// Buffers are referenced by opaque [BufferID] values. Adapters track the
// mapping between IDs and device resources. [InvalidID] is never returned
// for a live buffer.
package gpucore
