package commands

import (
	"context"

	"archeologist/internal/application"
	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// LayoutFactory builds a layout engine over a graph
type LayoutFactory func(g *domain.Graph) ports.LayoutEngine

// maxSettleSteps bounds the settle loop in case an engine never settles
const maxSettleSteps = 10000

// LoadGraphCommand loads the graph and runs the layout until it settles,
// so every node has a position
type LoadGraphCommand struct {
	loader *application.GraphLoader
	layout LayoutFactory
}

// NewLoadGraphCommand creates a new LoadGraphCommand. layout may be nil
// when positions are not needed.
func NewLoadGraphCommand(loader *application.GraphLoader, layout LayoutFactory) *LoadGraphCommand {
	return &LoadGraphCommand{loader: loader, layout: layout}
}

// Execute runs the load command
func (c *LoadGraphCommand) Execute(ctx context.Context) (application.LoadResult, error) {
	res, err := c.loader.Load(ctx)
	if err != nil {
		return res, err
	}
	if c.layout == nil {
		return res, nil
	}

	engine := c.layout(res.Graph)
	for i := 0; i < maxSettleSteps && !engine.Settled(); i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		engine.Step()
	}
	return res, nil
}
