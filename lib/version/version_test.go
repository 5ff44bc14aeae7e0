// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	Version = "1.4.0"
	if got := UserAgent(); got != "travis-after-all/1.4.0" {
		t.Errorf("UserAgent() = %q, want %q", got, "travis-after-all/1.4.0")
	}
}

func TestFullIncludesInfo(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Product+" "+Info()) {
		t.Errorf("Full() = %q, want prefix %q", full, Product+" "+Info())
	}
}
