package blueprint

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/diagram"
)

func TestSaaSB2BDefault(t *testing.T) {
	d, err := SaaSB2B()
	if err != nil {
		t.Fatalf("SaaSB2B: %v", err)
	}

	if d.Title() != "SaaS B2B system" {
		t.Errorf("Title() = %q", d.Title())
	}
	if d.Direction() != diagram.LeftToRight {
		t.Errorf("Direction() = %q, want LR", d.Direction())
	}
	if diff := cmp.Diff(Nodes, d.Nodes()); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Edges, d.Edges()); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if d.ClusterCount() != 0 {
		t.Errorf("default blueprint should have no clusters, got %d", d.ClusterCount())
	}
	if m := Check(d); len(m) != 0 {
		t.Errorf("Check() = %v, want no mismatches", m)
	}
}

func TestSaaSB2BIsolatedResources(t *testing.T) {
	d, err := SaaSB2B()
	if err != nil {
		t.Fatalf("SaaSB2B: %v", err)
	}
	want := []string{"containerRegistry", "github", "keyVault"}
	if diff := cmp.Diff(want, d.Isolated()); diff != "" {
		t.Errorf("Isolated() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaaSB2BIdempotent(t *testing.T) {
	for _, opts := range [][]Option{nil, {WithContainerClusters(), WithSecrets()}} {
		a, err := SaaSB2B(opts...)
		if err != nil {
			t.Fatalf("SaaSB2B: %v", err)
		}
		b, err := SaaSB2B(opts...)
		if err != nil {
			t.Fatalf("SaaSB2B: %v", err)
		}
		if diff := cmp.Diff(a.Nodes(), b.Nodes()); diff != "" {
			t.Errorf("nodes differ between runs:\n%s", diff)
		}
		if diff := cmp.Diff(a.Edges(), b.Edges()); diff != "" {
			t.Errorf("edges differ between runs:\n%s", diff)
		}
		if diff := cmp.Diff(a.Clusters(), b.Clusters()); diff != "" {
			t.Errorf("clusters differ between runs:\n%s", diff)
		}
	}
}

func TestSaaSB2BContainerClusters(t *testing.T) {
	d, err := SaaSB2B(WithContainerClusters())
	if err != nil {
		t.Fatalf("SaaSB2B: %v", err)
	}

	if d.NodeCount() != 21 {
		t.Errorf("NodeCount = %d, want 21", d.NodeCount())
	}
	if d.EdgeCount() != 33 {
		t.Errorf("EdgeCount = %d, want 33", d.EdgeCount())
	}

	wantClusters := []diagram.Cluster{
		{ID: "webAppContainers", Label: "Web App containers", Nodes: []string{"webAppContainer1", "webAppContainer2", "webAppContainer3"}},
		{ID: "apiContainers", Label: "API containers", Nodes: []string{"apiContainer1", "apiContainer2", "apiContainer3"}},
		{ID: "batchProcessorContainers", Label: "Batch processor containers", Nodes: []string{"batchProcessorContainer1", "batchProcessorContainer2", "batchProcessorContainer3"}},
	}
	if diff := cmp.Diff(wantClusters, d.Clusters()); diff != "" {
		t.Errorf("clusters mismatch (-want +got):\n%s", diff)
	}

	// every clustered node sits in exactly one cluster
	seen := map[string]int{}
	for _, c := range d.Clusters() {
		for _, id := range c.Nodes {
			seen[id]++
			n, ok := d.Node(id)
			if !ok {
				t.Fatalf("cluster %s references missing node %s", c.ID, id)
			}
			if n.Kind != catalog.AKS {
				t.Errorf("container %s kind = %s, want AKS", id, n.Kind)
			}
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("node %s appears in %d clusters", id, count)
		}
	}

	edges := []diagram.Edge{
		{From: "webApp", To: "webAppContainer2"},
		{From: "webAppContainer3", To: "api"},
		{From: "apiContainer1", To: "serviceBus"},
		{From: "apiContainer1", To: "postgreSQL"},
		{From: "postgreSQL", To: "serviceBus"},
		{From: "serviceBus", To: "batchProcessorContainer2"},
		{From: "batchProcessorContainer3", To: "blobStorage"},
		{From: "api", To: "elasticSearchCloud"},
	}
	for _, e := range edges {
		if !d.HasEdge(e.From, e.To) {
			t.Errorf("missing edge %s -> %s", e.From, e.To)
		}
	}
	if d.HasEdge("webApp", "api") {
		t.Error("clustered variant routes webApp through its containers")
	}

	if m := Check(d); len(m) == 0 {
		t.Error("Check() should report differences for the clustered variant")
	}
}

func TestSaaSB2BSecrets(t *testing.T) {
	d, err := SaaSB2B(WithSecrets())
	if err != nil {
		t.Fatalf("SaaSB2B: %v", err)
	}
	if d.EdgeCount() != len(Edges)+3 {
		t.Errorf("EdgeCount = %d, want %d", d.EdgeCount(), len(Edges)+3)
	}
	if diff := cmp.Diff([]string{"webApp", "api", "batchProcessor"}, d.Parents("keyVault")); diff != "" {
		t.Errorf("Parents(keyVault) mismatch (-want +got):\n%s", diff)
	}

	m := Check(d)
	if len(m) != 3 {
		t.Fatalf("Check() = %v, want 3 unexpected edges", m)
	}
	if m[0].What != "edge" {
		t.Errorf("mismatch kind = %q, want edge", m[0].What)
	}
}

func TestSaaSB2BDirection(t *testing.T) {
	d, err := SaaSB2B(WithDirection(diagram.TopToBottom))
	if err != nil {
		t.Fatalf("SaaSB2B: %v", err)
	}
	if d.Direction() != diagram.TopToBottom {
		t.Errorf("Direction() = %q, want TB", d.Direction())
	}

	if _, err := SaaSB2B(WithDirection("diagonal")); err == nil {
		t.Error("invalid direction should fail validation")
	}
}

func TestCheckReportsMissing(t *testing.T) {
	d := diagram.New(Title)
	d.Add("api", "API", catalog.AKS)

	m := Check(d)
	if len(m) != len(Nodes)-1+len(Edges) {
		t.Errorf("Check() returned %d mismatches, want %d", len(m), len(Nodes)-1+len(Edges))
	}
}
