package gfx

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
)

var testCacheHeader = pipelineCacheHeader{
	Length:   pipelineCacheHeaderLength,
	Version:  pipelineCacheHeaderVersionOne,
	VendorID: 0x10de,
	DeviceID: 0x2484,
	UUID:     uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
}

func encodeCacheData(c *qt.C, header pipelineCacheHeader, payload []byte) []byte {
	var buf bytes.Buffer
	c.Assert(binary.Write(&buf, binary.LittleEndian, header), qt.IsNil)
	buf.Write(payload)
	return buf.Bytes()
}

func TestParsePipelineCacheHeader(t *testing.T) {
	c := qt.New(t)

	data := encodeCacheData(c, testCacheHeader, []byte("blob"))
	c.Assert(data[:4], qt.DeepEquals, []byte{32, 0, 0, 0})

	header, err := parsePipelineCacheHeader(data)
	c.Assert(err, qt.IsNil)
	c.Assert(header, qt.Equals, testCacheHeader)
	c.Assert(header.compatible(testCacheHeader), qt.IsNil)

	_, err = parsePipelineCacheHeader(data[:16])
	c.Assert(err, qt.ErrorMatches, "pipeline cache too short: 16 bytes")
}

func TestPipelineCacheHeaderCompatible(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name   string
		mutate func(*pipelineCacheHeader)
		err    string
	}{
		{"length", func(h *pipelineCacheHeader) { h.Length = 16 }, "header length 16"},
		{"version", func(h *pipelineCacheHeader) { h.Version = 2 }, "header version 2"},
		{"vendor", func(h *pipelineCacheHeader) { h.VendorID = 0x1002 }, "vendor 0x1002, device has 0x10de"},
		{"device", func(h *pipelineCacheHeader) { h.DeviceID = 1 }, "device 0x1, device has 0x2484"},
		{"uuid", func(h *pipelineCacheHeader) { h.UUID = uuid.Nil }, "cache UUID .*"},
	}

	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			h := testCacheHeader
			test.mutate(&h)
			c.Assert(h.compatible(testCacheHeader), qt.ErrorMatches, test.err)
		})
	}
}

func TestLoadPipelineCacheData(t *testing.T) {
	c := qt.New(t)

	logger, hook := test.NewNullLogger()
	r := NewVulkanRenderer(Options{}, logger)
	dir := c.TempDir()

	c.Assert(r.loadPipelineCacheData("", testCacheHeader), qt.IsNil)
	c.Assert(r.loadPipelineCacheData(filepath.Join(dir, "missing.cache"), testCacheHeader), qt.IsNil)
	c.Assert(hook.AllEntries(), qt.HasLen, 0)

	path := filepath.Join(dir, "nested", "pipeline.cache")
	data := encodeCacheData(c, testCacheHeader, []byte("blob"))
	c.Assert(savePipelineCacheData(path, data), qt.IsNil)
	c.Assert(r.loadPipelineCacheData(path, testCacheHeader), qt.DeepEquals, data)

	other := testCacheHeader
	other.DeviceID++
	c.Assert(r.loadPipelineCacheData(path, other), qt.IsNil)
	c.Assert(hook.LastEntry().Message, qt.Contains, "discarding pipeline cache")

	c.Assert(os.WriteFile(path, []byte("junk"), 0o644), qt.IsNil)
	c.Assert(r.loadPipelineCacheData(path, testCacheHeader), qt.IsNil)
}
