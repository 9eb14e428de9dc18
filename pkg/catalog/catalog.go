// Package catalog holds the fixed vocabulary of cloud resource kinds a
// diagram node can be drawn as.
//
// A kind is addressed as provider.category.Type, mirroring the icon
// namespaces of common diagram-as-code tools:
//
//	k, err := catalog.Lookup("azure.compute.AKS")
//
// Icon assets are not shipped. Each kind instead carries drawing hints
// (Graphviz shape and fill colour) so that nodes of the same provider and
// category look alike in the rendered image.
package catalog

import (
	"slices"
	"strings"

	"github.com/saasfactory/archviz/pkg/errors"
)

// Provider groups kinds by vendor or hosting model.
type Provider string

const (
	ProviderAzure   Provider = "azure"
	ProviderAWS     Provider = "aws"
	ProviderSaaS    Provider = "saas"
	ProviderElastic Provider = "elastic"
	ProviderOnPrem  Provider = "onprem"
)

// Kind identifies one resource type in the catalog.
type Kind struct {
	Provider Provider `json:"provider"`
	Category string   `json:"category"`
	Type     string   `json:"type"`

	// Shape is the Graphviz node shape used in place of an icon.
	Shape string `json:"shape"`
	// Color is the fill colour used in place of an icon.
	Color string `json:"color"`
}

// String returns the dotted provider.category.Type form.
func (k Kind) String() string {
	return string(k.Provider) + "." + k.Category + "." + k.Type
}

// IsZero reports whether k is the zero Kind.
func (k Kind) IsZero() bool { return k.Type == "" }

var (
	// Azure
	AKS                          = define(ProviderAzure, "compute", "AKS", "box3d", "#cce4f6")
	ContainerRegistries          = define(ProviderAzure, "compute", "ContainerRegistries", "folder", "#cce4f6")
	DatabaseForPostgresqlServers = define(ProviderAzure, "database", "DatabaseForPostgresqlServers", "cylinder", "#d5e8d4")
	BlobStorage                  = define(ProviderAzure, "database", "BlobStorage", "cylinder", "#d5e8d4")
	ServiceBus                   = define(ProviderAzure, "integration", "ServiceBus", "cds", "#fff2cc")
	KeyVaults                    = define(ProviderAzure, "security", "KeyVaults", "octagon", "#f8cecc")

	// AWS
	EC2 = define(ProviderAWS, "compute", "EC2", "box3d", "#ffe6cc")
	RDS = define(ProviderAWS, "database", "RDS", "cylinder", "#ffe6cc")
	ELB = define(ProviderAWS, "network", "ELB", "diamond", "#ffe6cc")

	// SaaS and vendor-hosted
	Cloudflare    = define(ProviderSaaS, "cdn", "Cloudflare", "hexagon", "#fde5c8")
	ElasticSearch = define(ProviderElastic, "elasticsearch", "ElasticSearch", "cylinder", "#e1d5e7")

	// On-premises
	Github  = define(ProviderOnPrem, "vcs", "Github", "tab", "#eeeeee")
	Grafana = define(ProviderOnPrem, "monitoring", "Grafana", "component", "#fde5c8")
	Kafka   = define(ProviderOnPrem, "queue", "Kafka", "cds", "#eeeeee")
)

var registry = map[string]Kind{}

func define(p Provider, category, typ, shape, color string) Kind {
	k := Kind{Provider: p, Category: category, Type: typ, Shape: shape, Color: color}
	registry[strings.ToLower(k.String())] = k
	return k
}

// Lookup returns the kind registered under the dotted name. Matching is
// case-insensitive. Unknown names return an INVALID_RESOURCE error.
func Lookup(name string) (Kind, error) {
	k, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Kind{}, errors.New(errors.ErrCodeInvalidResource, "unknown resource kind %q", name)
	}
	return k, nil
}

// MustLookup is like Lookup but panics on unknown names.
// Use it only for compile-time constant names.
func MustLookup(name string) Kind {
	k, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return k
}

// Contains reports whether k is a registered kind.
func Contains(k Kind) bool {
	got, ok := registry[strings.ToLower(k.String())]
	return ok && got == k
}

// All returns every registered kind sorted by dotted name.
func All() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for _, k := range registry {
		kinds = append(kinds, k)
	}
	slices.SortFunc(kinds, func(a, b Kind) int { return strings.Compare(a.String(), b.String()) })
	return kinds
}

// Providers returns the distinct providers in sorted order.
func Providers() []Provider {
	var out []Provider
	for _, k := range All() {
		if !slices.Contains(out, k.Provider) {
			out = append(out, k.Provider)
		}
	}
	slices.Sort(out)
	return out
}

// ByProvider returns the kinds of one provider, sorted by dotted name.
func ByProvider(p Provider) []Kind {
	var out []Kind
	for _, k := range All() {
		if k.Provider == p {
			out = append(out, k)
		}
	}
	return out
}
