// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(NewTerminalHandler(&buf, false))

	lg.Info("hello", "balance", big.NewInt(123), "n", 7)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "INFO "))
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "balance=123")
	assert.Contains(t, out, "n=7")
}

func TestFormatSlogValueUint256(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(NewTerminalHandler(&buf, false))

	lg.Warn("big", "v", uint256.NewInt(42))
	assert.Contains(t, buf.String(), "v=42")
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(NewTerminalHandler(&buf, false)).New("pkg", "state")

	lg.Error("oops", "err", "boom")
	assert.Contains(t, buf.String(), "pkg=state")
	assert.Contains(t, buf.String(), "err=boom")
}
