package docker

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/melih/dockpanel/internal/core/domain"
)

// DrainMessages reads a pull or build stream until it ends. The first error
// event terminates the read and is returned. Every other event is handed to
// progress, which may be nil.
func DrainMessages(r io.Reader, progress func(domain.PullProgress)) error {
	dec := json.NewDecoder(r)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if msg.Error != nil {
			return msg.Error
		}

		if progress == nil {
			continue
		}
		ev := domain.PullProgress{ID: msg.ID, Status: msg.Status}
		if ev.Status == "" {
			ev.Status = msg.Stream
		}
		if msg.Progress != nil {
			ev.Current = msg.Progress.Current
			ev.Total = msg.Progress.Total
		}
		progress(ev)
	}
}
