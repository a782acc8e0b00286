package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"

	"github.com/vkplayground/vkplayground/internal/config"
	"github.com/vkplayground/vkplayground/internal/logging"
)

func TestNewJSON(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	log, err := logging.New(&buf, config.LogConfiguration{Level: "debug", Format: "json"})
	c.Assert(err, qt.IsNil)
	c.Assert(log.GetLevel(), qt.Equals, logrus.DebugLevel)

	logging.Named(log, "gfx").Info("hello")

	var entry map[string]interface{}
	c.Assert(json.Unmarshal(buf.Bytes(), &entry), qt.IsNil)
	c.Assert(entry["msg"], qt.Equals, "hello")
	c.Assert(entry[logging.FieldName], qt.Equals, "gfx")
	c.Assert(entry["level"], qt.Equals, "info")
}

func TestNewFiltersLevel(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	log, err := logging.New(&buf, config.LogConfiguration{Level: "warn", Format: "text"})
	c.Assert(err, qt.IsNil)

	log.Info("dropped")
	c.Assert(buf.Len(), qt.Equals, 0)
	log.Warn("kept")
	c.Assert(buf.String(), qt.Contains, "kept")
}

func TestNewErrors(t *testing.T) {
	c := qt.New(t)

	_, err := logging.New(&bytes.Buffer{}, config.LogConfiguration{Level: "nope", Format: "text"})
	c.Assert(err, qt.ErrorMatches, "log level: .*")

	_, err = logging.New(&bytes.Buffer{}, config.LogConfiguration{Level: "info", Format: "yaml"})
	c.Assert(err, qt.ErrorMatches, `unknown log format "yaml"`)
}
