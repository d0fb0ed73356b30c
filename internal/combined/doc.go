// Package combined provides interaction benchmarks that drive a queue with
// real producer and consumer goroutines.
//
// These benchmarks are more representative of real-world performance
// than isolated micro-benchmarks, as they capture lock contention, the
// consumer's drain loop and cache traffic between the two sides.
package combined
