// ABOUTME: Deal pipeline graph generation
// ABOUTME: Renders the stage flow with per-stage deal nodes via graphviz
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/services"
)

type GraphGenerator struct {
	deals    *services.Service
	contacts *services.Service
}

func NewGraphGenerator(deals, contacts *services.Service) *GraphGenerator {
	return &GraphGenerator{deals: deals, contacts: contacts}
}

// GeneratePipelineGraph renders the deal pipeline as DOT: stage nodes in
// flow order, with each open deal attached to its stage.
func (g *GraphGenerator) GeneratePipelineGraph(ctx context.Context) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.LRRank)

	stages := []string{
		models.StageLead,
		models.StageQualified,
		models.StageProposal,
		models.StageNegotiation,
		models.StageClosedWon,
		models.StageClosedLost,
	}

	stageNodes := make(map[string]*cgraph.Node)
	for _, stage := range stages {
		node, err := graph.CreateNodeByName(stage)
		if err != nil {
			return "", fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetShape(cgraph.BoxShape)
		stageNodes[stage] = node
	}

	// Stage flow edges; both closed stages hang off negotiation.
	for i := 0; i < 3; i++ {
		_, _ = graph.CreateEdgeByName("", stageNodes[stages[i]], stageNodes[stages[i+1]])
	}
	_, _ = graph.CreateEdgeByName("", stageNodes[models.StageNegotiation], stageNodes[models.StageClosedWon])
	_, _ = graph.CreateEdgeByName("", stageNodes[models.StageNegotiation], stageNodes[models.StageClosedLost])

	for _, r := range g.deals.List(ctx) {
		deal := models.DealFromRecord(r)
		stageNode, ok := stageNodes[deal.Stage]
		if !ok {
			continue
		}

		label := fmt.Sprintf("%s\n$%.0f (%.0f%%)", deal.Name, deal.Value, deal.Probability)
		if name := g.contactName(ctx, deal.ContactID); name != "" {
			label += "\n" + name
		}

		dealNode, err := graph.CreateNodeByName(fmt.Sprintf("deal-%d", deal.ID))
		if err != nil {
			continue
		}
		dealNode.SetLabel(label)

		_, _ = graph.CreateEdgeByName("", stageNode, dealNode)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}

func (g *GraphGenerator) contactName(ctx context.Context, id *int) string {
	if id == nil {
		return ""
	}
	record := g.contacts.GetByID(ctx, *id)
	if record == nil {
		return ""
	}
	return record.String("Name")
}
