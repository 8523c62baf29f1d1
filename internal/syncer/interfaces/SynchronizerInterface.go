package interfaces

type SynchronizerInterface interface {
	Init()
	Stop()
	Subscribe(handler func())
	NotifyChanged()
	ForceSynchronize()
}
