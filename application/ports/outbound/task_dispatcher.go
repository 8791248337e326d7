package outbound

// TaskDispatcher abstracts the worker pool so services never spawn bare
// goroutines.
type TaskDispatcher interface {
	Submit(task func()) error
}
