package util

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// PipelineStats tracks wall-clock time and heap growth across the named
// stages of a lomrf run (parse+compile, ground, infer, learn), so a single
// `-verbose` invocation reports where time and memory went stage by stage
// instead of only a single before/after total.
type PipelineStats struct {
	stageStart time.Time
	stageMem   uint64
	stages     []stageStat
}

// stageStat is one completed stage's elapsed time and heap growth.
type stageStat struct {
	name    string
	elapsed time.Duration
	allocMB float64
}

func (s stageStat) String() string {
	return fmt.Sprintf("%0.3fs using %0.2fMb", s.elapsed.Seconds(), s.allocMB)
}

// NewPipelineStats starts tracking a pipeline run from the current time and
// heap allocation.
func NewPipelineStats() *PipelineStats {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	return &PipelineStats{stageStart: time.Now(), stageMem: m.TotalAlloc}
}

// Mark closes out the stage since the last Mark (or since NewPipelineStats,
// for the first call) under name, logs it at debug level, and resets the
// clock/heap baseline for the next stage.
func (p *PipelineStats) Mark(name string) {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	stat := stageStat{
		name:    name,
		elapsed: time.Since(p.stageStart),
		allocMB: float64(m.TotalAlloc-p.stageMem) / 1024 / 1024,
	}

	p.stages = append(p.stages, stat)

	log.Debugf("%s took %s", name, stat)

	p.stageStart = time.Now()
	p.stageMem = m.TotalAlloc
}

// Log emits a single debug-level line summarizing every stage marked so
// far, in order, e.g. "compile+ground: 0.012s using 1.20Mb | infer: 1.403s
// using 48.30Mb".
func (p *PipelineStats) Log() {
	if len(p.stages) == 0 {
		return
	}

	parts := make([]string, len(p.stages))
	for i, s := range p.stages {
		parts[i] = fmt.Sprintf("%s: %s", s.name, s)
	}

	log.Debugf("pipeline stats - %s", strings.Join(parts, " | "))
}
