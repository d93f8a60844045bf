package cleanup

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// Scheduler sweeps stale uploads and rendered outputs so the data dirs do
// not grow without bound. Job records stay; only files age out.
type Scheduler struct {
	dirs     []string
	interval time.Duration
	maxAge   time.Duration
	stopChan chan struct{}
}

func NewScheduler(dirs []string, interval, maxAge time.Duration) *Scheduler {
	return &Scheduler{
		dirs:     dirs,
		interval: interval,
		maxAge:   maxAge,
		stopChan: make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.sweep()

	ticker := time.NewTicker(s.interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	log.Printf("Cleanup: scheduler started (interval %v, max age %v)", s.interval, s.maxAge)
}

func (s *Scheduler) Stop() {
	close(s.stopChan)
	log.Println("Cleanup: scheduler stopped")
}

func (s *Scheduler) sweep() {
	cutoff := time.Now().Add(-s.maxAge)
	var removed int

	for _, dir := range s.dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(path); err == nil {
					removed++
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("Cleanup: sweep of %s failed: %v", dir, err)
		}
	}
	if removed > 0 {
		log.Printf("Cleanup: removed %d stale files", removed)
	}
}
