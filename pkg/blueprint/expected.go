package blueprint

import (
	"fmt"
	"slices"

	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/diagram"
)

// Nodes is the reference node table of the default blueprint.
var Nodes = []diagram.Node{
	{ID: "webApp", Label: "Blazor", Kind: catalog.AKS},
	{ID: "api", Label: "API", Kind: catalog.AKS},
	{ID: "batchProcessor", Label: "Batch processor", Kind: catalog.AKS},
	{ID: "serviceBus", Label: "Service Bus", Kind: catalog.ServiceBus},
	{ID: "containerRegistry", Label: "Container Registry", Kind: catalog.ContainerRegistries},
	{ID: "grafanaCloud", Label: "Grafana Cloud", Kind: catalog.Grafana},
	{ID: "github", Label: "Github", Kind: catalog.Github},
	{ID: "cloudflare", Label: "Cloudflare", Kind: catalog.Cloudflare},
	{ID: "keyVault", Label: "Key Vault", Kind: catalog.KeyVaults},
	{ID: "postgreSQL", Label: "PostgresSQL", Kind: catalog.DatabaseForPostgresqlServers},
	{ID: "blobStorage", Label: "Blob Storage", Kind: catalog.BlobStorage},
	{ID: "elasticSearchCloud", Label: "Elastic Search Cloud", Kind: catalog.ElasticSearch},
}

// Edges is the reference edge list of the default blueprint, in declaration
// order with repeated declarations collapsed.
var Edges = []diagram.Edge{
	{From: "cloudflare", To: "webApp"},
	{From: "webApp", To: "api"},
	{From: "api", To: "serviceBus"},
	{From: "serviceBus", To: "batchProcessor"},
	{From: "batchProcessor", To: "blobStorage"},
	{From: "api", To: "postgreSQL"},
	{From: "postgreSQL", To: "serviceBus"},
	{From: "api", To: "blobStorage"},
	{From: "webApp", To: "grafanaCloud"},
	{From: "api", To: "grafanaCloud"},
	{From: "batchProcessor", To: "grafanaCloud"},
	{From: "api", To: "elasticSearchCloud"},
}

// Mismatch describes one difference between a diagram and the reference
// tables.
type Mismatch struct {
	What   string // "node" or "edge"
	Detail string
}

func (m Mismatch) String() string { return m.What + ": " + m.Detail }

// Check compares d against the reference node table and edge list as sets
// and returns every difference. An empty result means d is structurally
// identical to the default blueprint.
func Check(d *diagram.Diagram) []Mismatch {
	var out []Mismatch

	got := d.Nodes()
	for _, want := range Nodes {
		if !slices.Contains(got, want) {
			out = append(out, Mismatch{"node", fmt.Sprintf("missing %s (%q, %s)", want.ID, want.Label, want.Kind)})
		}
	}
	for _, n := range got {
		if !slices.Contains(Nodes, n) {
			out = append(out, Mismatch{"node", fmt.Sprintf("unexpected %s (%q, %s)", n.ID, n.Label, n.Kind)})
		}
	}

	gotEdges := d.Edges()
	for _, want := range Edges {
		if !slices.Contains(gotEdges, want) {
			out = append(out, Mismatch{"edge", fmt.Sprintf("missing %s -> %s", want.From, want.To)})
		}
	}
	for _, e := range gotEdges {
		if !slices.Contains(Edges, e) {
			out = append(out, Mismatch{"edge", fmt.Sprintf("unexpected %s -> %s", e.From, e.To)})
		}
	}
	return out
}
