package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrProfilerBusy is returned when a capture is refused because one is running
// or the cooldown has not elapsed
var ErrProfilerBusy = errors.New("profiler busy")

// Profiler captures a CPU profile and an execution trace when a simulation
// frame takes longer than its budget
type Profiler struct {
	mu              sync.Mutex
	wg              sync.WaitGroup
	isProfiling     bool
	lastCaptureTime time.Time

	log             *zap.Logger
	profilesDir     string
	budget          time.Duration
	captureCooldown time.Duration
	captureDuration time.Duration
}

// NewProfiler creates a profiler writing into dir. Frames slower than budget
// trigger a capture.
func NewProfiler(dir string, budget time.Duration, log *zap.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile dir %s: %w", dir, err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Profiler{
		log:             log,
		profilesDir:     dir,
		budget:          budget,
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		captureDuration: 2 * time.Second,
	}, nil
}

// Observe records one frame's wall time and starts a capture when it blew
// the budget. It never blocks the caller.
func (p *Profiler) Observe(frame time.Duration) {
	if frame <= p.budget {
		return
	}
	err := p.CaptureProfile("slow-frame")
	if err == nil {
		p.log.Warn("slow frame, capturing profile",
			zap.Duration("frame", frame),
			zap.Duration("budget", p.budget))
	}
}

// CaptureProfile captures a CPU profile and trace in the background
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling || time.Since(p.lastCaptureTime) < p.captureCooldown {
		return ErrProfilerBusy
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	timestamp := time.Now().Format("20060102-150405")
	baseName := fmt.Sprintf("%s-%s", reason, timestamp)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		// CPU profile and trace run side by side
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.log.Error("cpu profile failed", zap.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.log.Error("trace failed", zap.Error(err))
			}
		}()
		wg.Wait()

		p.logMemStats(baseName)
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.log.Info("cpu profile saved", zap.String("path", profilePath))
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.log.Info("trace saved", zap.String("path", tracePath))
	return nil
}

func (p *Profiler) logMemStats(baseName string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.log.Info("memory at capture",
		zap.String("capture", baseName),
		zap.Uint64("alloc_kb", m.Alloc/1024),
		zap.Uint64("total_alloc_kb", m.TotalAlloc/1024),
		zap.Uint64("sys_kb", m.Sys/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_objects", m.HeapObjects))
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// Wait blocks until any running capture has been written
func (p *Profiler) Wait() {
	p.wg.Wait()
}
