package controllers

import (
	"net/http"

	"onlyone/internal/providers"
	"onlyone/internal/syncer/interfaces"
)

type SyncController struct {
	logger       providers.Logger
	synchronizer interfaces.SynchronizerInterface
}

func NewSyncController(logger providers.Logger, synchronizer interfaces.SynchronizerInterface) *SyncController {
	return &SyncController{
		logger:       logger,
		synchronizer: synchronizer,
	}
}

// ForceSync is the explicit "re-check now" hook, the daemon equivalent of the
// app coming back to the foreground.
func (sc *SyncController) ForceSync(w http.ResponseWriter, r *http.Request) {
	sc.logger.Debugf(providers.TypePost, "Force synchronize requested")
	sc.synchronizer.ForceSynchronize()
	w.WriteHeader(http.StatusAccepted)
}
