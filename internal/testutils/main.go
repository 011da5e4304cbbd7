package testutils

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"
)

// RunWithCleanup runs the tests of an integration package and purges the
// shared container afterwards, including on Ctrl+C. Call it from TestMain.
func RunWithCleanup(m *testing.M, pkg string) int {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		log.Printf("%s tests interrupted, cleaning up Docker containers...", pkg)
		CleanupSharedContainer()
		os.Exit(1)
	}()

	log.Printf("Starting %s integration tests...", pkg)
	code := m.Run()
	CleanupSharedContainer()
	return code
}
