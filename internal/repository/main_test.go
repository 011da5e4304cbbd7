//go:build integration
// +build integration

package repository

import (
	"os"
	"testing"

	"cricket-registration-backend/internal/testutils"
)

func TestMain(m *testing.M) {
	os.Exit(testutils.RunWithCleanup(m, "repository"))
}
