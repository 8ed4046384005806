package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackcoderx/apistudio/pkg/model"
	"github.com/blackcoderx/apistudio/pkg/storage"
)

// parseInput turns the input line into a request. "METHOD URL" builds an
// ad-hoc request; anything else is looked up as a saved request.
func parseInput(line string, ws *storage.Workspace) (model.Request, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.Request{}, errors.New("nothing to send")
	}

	fields := strings.Fields(line)
	if len(fields) == 2 {
		if method, err := model.ParseMethod(fields[0]); err == nil {
			req := model.NewRequest()
			req.Name = line
			req.Method = method
			req.URL = fields[1]
			return req, nil
		}
	}

	req, _, err := ws.FindRequest(line, "")
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Request{}, fmt.Errorf("no saved request %q; type METHOD URL to send an ad-hoc request", line)
		}
		return model.Request{}, err
	}
	return req, nil
}
