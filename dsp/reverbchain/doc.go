// Package reverbchain wires a reverb engine, a stereo pre-delay line and a
// set of smoothed parameters into a real-time signal chain.
//
// Per block, [Chain.Process] advances every parameter by the block length,
// pushes the results into the engine and the pre-delay line once, then runs
// each frame through engine → pre-delay → dry/wet sum:
//
//	wet            = engine.Tick(in)
//	delayed        = predelay(wet)      // pass-through when the line is 0 or 1 sample
//	out[channel]   = delayed[channel] + in[channel]*dry
//
// After [New] or [Chain.Initialize], Process does not allocate and does a
// bounded amount of work per frame. Parameter targets may be written from any
// goroutine through [Params]; Process is driven by a single audio goroutine.
package reverbchain
