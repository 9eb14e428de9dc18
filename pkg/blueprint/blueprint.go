// Package blueprint declares the built-in "SaaS B2B system" architecture
// diagram.
//
// The default declaration has twelve resources and the data-flow edges
// between them. Two options switch on the variants that were kept
// commented out in earlier revisions of the diagram: per-service container
// clusters, and Key Vault secret edges.
//
//	d, err := blueprint.SaaSB2B()
//	d, err := blueprint.SaaSB2B(blueprint.WithContainerClusters(), blueprint.WithSecrets())
package blueprint

import (
	"fmt"

	"github.com/saasfactory/archviz/pkg/catalog"
	"github.com/saasfactory/archviz/pkg/diagram"
)

// Title is the diagram title. The default output file name derives from it.
const Title = "SaaS B2B system"

// Option toggles a variant of the blueprint.
type Option func(*options)

type options struct {
	clusters  bool
	secrets   bool
	direction diagram.Direction
}

// WithContainerClusters adds a cluster of three AKS containers behind each
// of the web app, the API and the batch processor, and routes the main
// request paths through them.
func WithContainerClusters() Option {
	return func(o *options) { o.clusters = true }
}

// WithSecrets connects the three workloads to Key Vault.
func WithSecrets() Option {
	return func(o *options) { o.secrets = true }
}

// WithDirection overrides the left-to-right default.
func WithDirection(dir diagram.Direction) Option {
	return func(o *options) { o.direction = dir }
}

// SaaSB2B builds the diagram. Building it twice with the same options yields
// identical structures.
func SaaSB2B(opts ...Option) (*diagram.Diagram, error) {
	o := options{direction: diagram.LeftToRight}
	for _, opt := range opts {
		opt(&o)
	}

	d := diagram.New(Title, diagram.WithDirection(o.direction))

	// resources
	webApp := d.Add("webApp", "Blazor", catalog.AKS)
	api := d.Add("api", "API", catalog.AKS)
	batchProcessor := d.Add("batchProcessor", "Batch processor", catalog.AKS)
	serviceBus := d.Add("serviceBus", "Service Bus", catalog.ServiceBus)
	d.Add("containerRegistry", "Container Registry", catalog.ContainerRegistries)
	grafanaCloud := d.Add("grafanaCloud", "Grafana Cloud", catalog.Grafana)
	d.Add("github", "Github", catalog.Github)
	cloudflare := d.Add("cloudflare", "Cloudflare", catalog.Cloudflare)
	keyVault := d.Add("keyVault", "Key Vault", catalog.KeyVaults)
	postgreSQL := d.Add("postgreSQL", "PostgresSQL", catalog.DatabaseForPostgresqlServers)
	blobStorage := d.Add("blobStorage", "Blob Storage", catalog.BlobStorage)
	elasticSearchCloud := d.Add("elasticSearchCloud", "Elastic Search Cloud", catalog.ElasticSearch)

	if o.clusters {
		webAppContainers := containers(d, "webAppContainers", "Web App containers", "webAppContainer")
		apiContainers := containers(d, "apiContainers", "API containers", "apiContainer")
		batchProcessorContainers := containers(d, "batchProcessorContainers", "Batch processor containers", "batchProcessorContainer")

		d.Chain(cloudflare, webApp, webAppContainers, api, apiContainers, serviceBus, batchProcessor, batchProcessorContainers, blobStorage)
		d.Chain(cloudflare, webApp, webAppContainers, api, apiContainers, postgreSQL, serviceBus, batchProcessorContainers, blobStorage)
	} else {
		d.Chain(cloudflare, webApp, api, serviceBus, batchProcessor, blobStorage)
		d.Chain(api, postgreSQL, serviceBus, batchProcessor)
	}

	d.Chain(api, blobStorage)
	d.Chain(batchProcessor, blobStorage)

	d.Chain(webApp, grafanaCloud)
	d.Chain(api, grafanaCloud)
	d.Chain(batchProcessor, grafanaCloud)

	d.Chain(api, elasticSearchCloud)

	if o.secrets {
		d.Chain(webApp, keyVault)
		d.Chain(api, keyVault)
		d.Chain(batchProcessor, keyVault)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("blueprint %q: %w", Title, err)
	}
	return d, nil
}

// containers declares a cluster of three AKS nodes labelled 1, 2 and 3.
func containers(d *diagram.Diagram, id, label, prefix string) diagram.Group {
	return d.Cluster(id, label, func(c *diagram.ClusterScope) {
		for i := 1; i <= 3; i++ {
			c.Add(fmt.Sprintf("%s%d", prefix, i), fmt.Sprint(i), catalog.AKS)
		}
	})
}
