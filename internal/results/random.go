package results

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"time"
)

var simulatedNames = []string{
	"HAMZA MUNIR",
	"AYESHA KHAN",
	"MUHAMMAD ALI",
	"FATIMA ZAHRA",
	"USMAN TARIQ",
	"ZAINAB RAZA",
	"BILAL AHMED",
	"MARYAM NOOR",
	"HASSAN JAVED",
	"SANA IQBAL",
}

type RandomOptions struct {
	Seed uint64
	// NotFoundRate is the chance in [0, 1] that a roll number doesn't exist.
	NotFoundRate float64
	MinMarks     int
	MaxMarks     int
	// Latency is how long each resolve pretends to wait on the network.
	Latency time.Duration
}

// RandomResolver makes up results, it is meant for demos and load testing
// the rest of the pipeline without touching the portal.
//
// The output depends only on the seed and the roll number, so a roll number
// always resolves to the same record no matter how calls interleave.
type RandomResolver struct {
	opts RandomOptions
}

func NewRandomResolver(opts RandomOptions) RandomResolver {
	if opts.NotFoundRate < 0 {
		opts.NotFoundRate = 0
	}
	if opts.NotFoundRate > 1 {
		opts.NotFoundRate = 1
	}
	if opts.MaxMarks < opts.MinMarks {
		opts.MinMarks, opts.MaxMarks = opts.MaxMarks, opts.MinMarks
	}
	return RandomResolver{opts: opts}
}

func (r RandomResolver) source(rollNumber string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(rollNumber))
	return rand.New(rand.NewPCG(r.opts.Seed, h.Sum64()))
}

func (r RandomResolver) Resolve(ctx context.Context, rollNumber string) (Lookup, error) {
	if r.opts.Latency > 0 {
		timer := time.NewTimer(r.opts.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Lookup{}, ctx.Err()
		}
	}

	rng := r.source(rollNumber)
	if rng.Float64() < r.opts.NotFoundRate {
		return Lookup{
			StudentName:  NOT_AVAILABLE,
			SubjectMarks: NOT_AVAILABLE,
			Found:        false,
		}, nil
	}

	marks := r.opts.MinMarks + rng.IntN(r.opts.MaxMarks-r.opts.MinMarks+1)
	return Lookup{
		StudentName:  simulatedNames[rng.IntN(len(simulatedNames))],
		SubjectMarks: strconv.Itoa(marks),
		Found:        true,
	}, nil
}
