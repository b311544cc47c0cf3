//go:build !nogpu

package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/glemu"
	"github.com/gogpu/glemu/backend"
	"github.com/gogpu/glemu/backend/emulated"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// BackendNative is the identifier for the native GPU backend.
const BackendNative = backend.BackendNative

// InstanceCreator is the part of hal.Backend used to open a device.
type InstanceCreator interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// NativeBackend is a GL context backend that owns a standalone WebGPU
// device. Its GL20 context is an emulated.Context over a HALAdapter.
type NativeBackend struct {
	mu sync.Mutex

	api      InstanceCreator
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  *HALAdapter
	ctx      *emulated.Context
}

var (
	_ backend.ContextBackend = (*NativeBackend)(nil)
	_ backend.Loser          = (*NativeBackend)(nil)
)

func init() {
	backend.Register(BackendNative, func() backend.ContextBackend {
		return NewNativeBackend()
	})
}

// NewNativeBackend creates a backend that opens a Vulkan device on Init.
func NewNativeBackend() *NativeBackend {
	return &NativeBackend{}
}

// NewNativeBackendWithAPI creates a backend that opens its device from api,
// typically a hal.Backend such as noop.API in tests.
func NewNativeBackendWithAPI(api InstanceCreator) *NativeBackend {
	return &NativeBackend{api: api}
}

// Name returns the backend identifier.
func (b *NativeBackend) Name() string {
	return BackendNative
}

// Init creates an instance, opens the first discrete or integrated GPU
// (falling back to the first adapter) and builds the emulated context.
func (b *NativeBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		return nil
	}

	api := b.api
	if api == nil {
		vk, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
		}
		api = vk
	}

	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return ErrNoGPU
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("open device: %w", err)
	}

	b.instance = instance
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.adapter = NewHALAdapter(b.device, b.queue, &limits)
	b.ctx = emulated.New(b.adapter)

	glemu.Logger().Info("native: GPU initialized", "adapter", selected.Info.Name)
	return nil
}

// Close releases the context's buffers, the device and the instance.
func (b *NativeBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		b.ctx.Close()
		b.ctx = nil
	}
	if b.adapter != nil {
		b.adapter.Close()
		b.adapter = nil
	}
	if b.device != nil {
		b.device.Destroy()
		b.device = nil
	}
	b.queue = nil
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}

// GL returns the emulated context, or nil before Init.
func (b *NativeBackend) GL() glemu.GL20 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx == nil {
		return nil
	}
	return b.ctx
}

// Adapter returns the buffer adapter, or nil before Init.
func (b *NativeBackend) Adapter() *HALAdapter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.adapter
}

// Lose simulates a context loss on the emulated context.
func (b *NativeBackend) Lose() {
	b.mu.Lock()
	ctx := b.ctx
	b.mu.Unlock()
	if ctx != nil {
		ctx.Lose()
	}
}
