package gfx

import (
	"bytes"
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/vkngwrapper/core/v3/core1_0"
)

const (
	pipelineCacheHeaderLength     = 32
	pipelineCacheHeaderVersionOne = 1
)

// pipelineCacheHeader is the fixed prefix of pipeline cache data. Fields are
// stored least significant byte first.
type pipelineCacheHeader struct {
	Length   uint32
	Version  uint32
	VendorID uint32
	DeviceID uint32
	UUID     uuid.UUID
}

func parsePipelineCacheHeader(data []byte) (pipelineCacheHeader, error) {
	var header pipelineCacheHeader
	if len(data) < pipelineCacheHeaderLength {
		return header, errors.Newf("pipeline cache too short: %d bytes", len(data))
	}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return header, errors.Wrap(err, "read pipeline cache header")
	}
	return header, nil
}

// compatible returns an error describing the first field that rules out
// reusing cached data on the device described by want.
func (h pipelineCacheHeader) compatible(want pipelineCacheHeader) error {
	switch {
	case h.Length < pipelineCacheHeaderLength:
		return errors.Newf("header length %d", h.Length)
	case h.Version != pipelineCacheHeaderVersionOne:
		return errors.Newf("header version %d", h.Version)
	case h.VendorID != want.VendorID:
		return errors.Newf("vendor %#x, device has %#x", h.VendorID, want.VendorID)
	case h.DeviceID != want.DeviceID:
		return errors.Newf("device %#x, device has %#x", h.DeviceID, want.DeviceID)
	case h.UUID != want.UUID:
		return errors.Newf("cache UUID %s, device has %s", h.UUID, want.UUID)
	}
	return nil
}

func deviceCacheHeader(props *core1_0.PhysicalDeviceProperties) pipelineCacheHeader {
	return pipelineCacheHeader{
		Length:   pipelineCacheHeaderLength,
		Version:  pipelineCacheHeaderVersionOne,
		VendorID: props.VendorID,
		DeviceID: props.DeviceID,
		UUID:     props.PipelineCacheUUID,
	}
}

// loadPipelineCacheData returns cached data that is usable on the device, or
// nil when there is none.
func (r *VulkanRenderer) loadPipelineCacheData(path string, want pipelineCacheHeader) []byte {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		r.log.WithError(err).Warn("could not read pipeline cache")
		return nil
	}

	header, err := parsePipelineCacheHeader(data)
	if err == nil {
		err = header.compatible(want)
	}
	if err != nil {
		r.log.WithError(err).Infof("discarding pipeline cache %s", path)
		return nil
	}

	return data
}

func (r *VulkanRenderer) createPipelineCache() error {
	initialData := r.loadPipelineCacheData(r.opts.PipelineCachePath, deviceCacheHeader(r.device.Properties))

	cache, _, err := r.deviceDriver.CreatePipelineCache(nil, core1_0.PipelineCacheCreateInfo{
		InitialData: initialData,
	})
	if err != nil {
		return err
	}

	r.pipelineCache = cache
	r.log.Debugf("pipeline cache created with %d bytes", len(initialData))
	return nil
}

func savePipelineCacheData(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create pipeline cache directory")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write pipeline cache")
}

// destroyPipelineCache writes the cache contents to disk before destroying
// it. Failing to save only costs a slower next start.
func (r *VulkanRenderer) destroyPipelineCache() {
	if !r.pipelineCache.Initialized() {
		return
	}

	if r.opts.PipelineCachePath != "" {
		data, _, err := r.deviceDriver.GetPipelineCacheData(r.pipelineCache)
		if err == nil {
			err = savePipelineCacheData(r.opts.PipelineCachePath, data)
		}
		if err != nil {
			r.log.WithError(err).Warn("could not save pipeline cache")
		} else {
			r.log.Debugf("saved %d bytes of pipeline cache to %s", len(data), r.opts.PipelineCachePath)
		}
	}

	r.deviceDriver.DestroyPipelineCache(r.pipelineCache, nil)
	r.pipelineCache = core1_0.PipelineCache{}
}
