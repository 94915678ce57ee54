package graph

import (
	"context"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/errcat"
)

/*
	Saver is the persistence gateway a Graph saves through.
	See `save.Client` for the HTTP implementation.

	Save makes one attempt to store the form-encoded payload and returns
	the service's receipt.  Transport failures should be reported with
	category `api.ErrSaveTransport`, and unusable answers with
	`api.ErrSaveProtocol`.

	CalculatorBase is the URL public graph links hang off of,
	e.g. "https://www.desmos.com/calculator".
*/
type Saver interface {
	Save(ctx context.Context, payload string) (api.SaveReceipt, error)
	CalculatorBase() string
}

// State encodes the graph's current items as calculator state JSON.
func (g *Graph) State() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return api.EncodeState(g.items)
}

/*
	Payload assembles a complete save request body for the graph's current
	items.  The graph hash inside is salted with the graph's clock, so
	consecutive calls generally return different bodies.
*/
func (g *Graph) Payload() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return api.BuildSavePayload(g.items, g.clock())
}

/*
	Save uploads the graph through `s` and, on success, records the public
	URL (see `Location`).

	A single attempt is made.  On failure the error is returned as the
	Saver reported it, and the graph's location is left as it was.
*/
func (g *Graph) Save(ctx context.Context, s Saver) error {
	payload, err := g.Payload()
	if err != nil {
		return err
	}
	g.log.Debug("saving graph", "items", len(g.items), "bytes", len(payload))
	receipt, err := s.Save(ctx, payload)
	if err != nil {
		g.log.Info("graph save failed", "err", err)
		return err
	}
	if receipt.Hash == "" {
		return errcat.Errorf(api.ErrSaveProtocol, "save receipt did not include a graph hash")
	}
	g.receipt = receipt
	g.location = api.CalculatorURL(s.CalculatorBase(), receipt.Hash)
	g.log.Info("graph saved", "location", g.location)
	return nil
}
