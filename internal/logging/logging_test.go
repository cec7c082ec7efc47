/*
 * logging_test.go, part of mdbin.
 *
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetAndLevels(Te *testing.T) {
	prev := L()
	defer Set(prev)
	core, logs := observer.New(zapcore.WarnLevel)
	Set(zap.New(core))
	L().Info("ignored")
	L().Warn("kept", zap.Int("frame", 3))
	assert.Equal(Te, 1, logs.Len())
	assert.Equal(Te, int64(3), logs.All()[0].ContextMap()["frame"])
	Set(nil)
	assert.NotNil(Te, L())
	assert.Equal(Te, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(Te, zapcore.InfoLevel, ParseLevel("whatever"))
	assert.NoError(Te, Configure("debug", "console"))
}
