package main

import (
	"math"
	"math/rand/v2"

	evdisplay "github.com/argoncube/evdisplay_go/pkg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

type synthConfig struct {
	Events   int
	Tracks   int
	Step     float64 // cm between hits
	Smearing float64 // cm
	Seed     uint64
	Workers  int
}

// Half size of the active volume, cm
const activeHalfSize = 70

var particles = []int{13, -13, 211, -211, 2212, 11, 321}

// generate produces straight tracks through the ArgonCube modules. Every
// track is a record; the tracks of an event share its index.
func generate(cfg synthConfig, layout evdisplay.Layout) *evdisplay.MemoryDataset {
	m := evdisplay.NewMemoryDataset(layout)
	for _, records := range generateEvents(cfg) {
		for _, record := range records {
			m.Append(record)
		}
	}
	return m
}

// generateEvent draws the tracks of one event. Each event has its own
// stream so the result does not depend on the worker that ran it.
func generateEvent(cfg synthConfig, event int) []evdisplay.MemoryRecord {
	src := rand.NewPCG(cfg.Seed, uint64(event)^0x9e3779b97f4a7c15)
	rnd := rand.New(src)

	start := distuv.Uniform{Min: -activeHalfSize + 10, Max: activeHalfSize - 10, Src: src}
	direction := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	smearing := distuv.Normal{Mu: 0, Sigma: cfg.Smearing, Src: src}
	length := distuv.Exponential{Rate: 1.0 / 40, Src: src}
	charge := distuv.Normal{Mu: 5, Sigma: 1.5, Src: src}

	records := make([]evdisplay.MemoryRecord, 0, cfg.Tracks)
	for track := 0; track < cfg.Tracks; track++ {
		origin := []float64{start.Rand(), start.Rand(), start.Rand()}
		dir := []float64{direction.Rand(), direction.Rand(), direction.Rand()}
		norm := floats.Norm(dir, 2)
		if norm == 0 {
			dir, norm = []float64{0, 0, 1}, 1
		}
		floats.Scale(1/norm, dir)

		pid := float64(particles[rnd.IntN(len(particles))])
		n := int((length.Rand() + 5) / cfg.Step)

		record := evdisplay.MemoryRecord{
			Event:       event,
			HitFields:   map[string][]float64{"q": {}, evdisplay.ParticleField: {}},
			EventFields: map[string]float64{},
		}
		var total float64
		for i := 0; i < n; i++ {
			var p [3]float64
			inside := true
			for axis := range p {
				p[axis] = origin[axis] + float64(i)*cfg.Step*dir[axis] + smearing.Rand()
				inside = inside && math.Abs(p[axis]) < activeHalfSize
			}
			if !inside {
				break
			}
			q := math.Abs(charge.Rand())
			total += q
			record.X = append(record.X, p[0])
			record.Y = append(record.Y, p[1])
			record.Z = append(record.Z, p[2])
			record.HitFields["q"] = append(record.HitFields["q"], q)
			record.HitFields[evdisplay.ParticleField] = append(record.HitFields[evdisplay.ParticleField], pid)
		}
		record.EventFields["dq"] = total
		record.EventFields["pid"] = pid
		records = append(records, record)
	}
	return records
}
