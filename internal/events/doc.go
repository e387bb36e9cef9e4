// Package events provides a small in-process event bus.
//
// Services publish Events through an EventEmitter without knowing who
// consumes them. The wordlist stage-advance notification is the main producer;
// LoggingHandler is the default consumer.
package events
