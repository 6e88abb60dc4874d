package diag_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wutims/draftengine/internal/diag"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(orig)
		log.SetFlags(flags)
	}()
	fn()
	return buf.String()
}

func TestLogger_TagsEachLevelWithComponent(t *testing.T) {
	logger := diag.New("recommend.PickEngine")

	out := captureLog(t, func() { logger.Info("loaded %d champions", 5) })
	assert.Equal(t, "INFO [recommend.PickEngine] loaded 5 champions\n", out)

	out = captureLog(t, func() { logger.Warn("missing data for %s", "Azir") })
	assert.Equal(t, "WARN [recommend.PickEngine] missing data for Azir\n", out)

	out = captureLog(t, func() { logger.Error("store load failed: %v", assert.AnError) })
	assert.Equal(t, "ERROR [recommend.PickEngine] store load failed: "+assert.AnError.Error()+"\n", out)
}
