package di

import (
	"onlyone/internal/services"
	"onlyone/internal/syncer/interfaces"
)

// ProvideChangeNotifier narrows the synchronizer to the notify-only interface
// the answer service depends on.
func ProvideChangeNotifier(s interfaces.SynchronizerInterface) services.ChangeNotifier {
	return s
}
