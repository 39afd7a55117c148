package types

// This file defines how the storage reports what it is doing.

/*
Metrics is an interface that defines what ExpiringStorage wants to measure.
Each method represents an event in an entry's lifecycle. The storage will call these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when a live entry is returned.
	Hit()

	// Miss is called when no live entry exists for a key (absent, expired or undecodable).
	Miss()

	// Expire is called when an entry is found past its expiry and removed from the medium.
	Expire()

	// Write is called after an envelope has been written to the medium.
	Write()

	// Corrupt is called when a stored value cannot be decoded as an envelope.
	Corrupt()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

We don't want to force every user of the storage to wire metrics,
and we don't want "if metrics != nil" checks everywhere either.
So the engine falls back to this when nothing is configured.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()     {}
func (NoopMetrics) Miss()    {}
func (NoopMetrics) Expire()  {}
func (NoopMetrics) Write()   {}
func (NoopMetrics) Corrupt() {}
