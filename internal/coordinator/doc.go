// Package coordinator spawns the workers, hands each one its descriptor and
// the shared console lock, and joins them in ordinal order.
//
// Worker i prints the integers [10*(i-1), 10*i) while holding the lock, so
// each worker's line reaches the output as one uninterrupted unit. The order
// in which workers win the lock is left to the scheduler.
//
// The concurrent-unit runtime sits behind the Spawner and Handle interfaces
// so that spawn and join failures can be produced and observed; observation
// of spawns, joins and lock waits goes through the Observer interface.
package coordinator
